// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// CallFlag restricts what a called contract is allowed to do.  Flags are
// pushed as an integer argument of the System.Contract.Call system call.
type CallFlag byte

// Permissions grantable to a contract call.
const (
	CallFlagNone        CallFlag = 0
	CallFlagReadStates  CallFlag = 1 << 0
	CallFlagWriteStates CallFlag = 1 << 1
	CallFlagAllowCall   CallFlag = 1 << 2
	CallFlagAllowNotify CallFlag = 1 << 3

	CallFlagStates   = CallFlagReadStates | CallFlagWriteStates
	CallFlagReadOnly = CallFlagReadStates | CallFlagAllowCall
	CallFlagAll      = CallFlagStates | CallFlagAllowCall | CallFlagAllowNotify
)

// Has returns whether every bit of flag is set in f.
func (f CallFlag) Has(flag CallFlag) bool {
	return f&flag == flag
}
