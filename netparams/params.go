// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netparams

import (
	"net"
	"strings"

	"github.com/pkg/errors"
)

// These constants are consensus-level caps shared by every network.  They
// bound decoding and assembly so a malformed or hostile payload cannot
// produce transactions no node would relay.
const (
	// MaxTransactionSize is the maximum serialized transaction size in
	// bytes, witnesses included.
	MaxTransactionSize = 102400

	// MaxTransactionAttributes is the maximum number of attributes a
	// transaction may carry.
	MaxTransactionAttributes = 16

	// MaxTransactionSigners is the maximum number of signers a
	// transaction may declare.
	MaxTransactionSigners = 16

	// MaxSignerSubitems is the maximum number of entries in a single
	// signer's allowed-contract, allowed-group or rule list.
	MaxSignerSubitems = 16

	// MaxWitnessConditionNesting is the maximum nesting depth of a
	// composite witness condition.
	MaxWitnessConditionNesting = 2

	// CurrentTransactionVersion is the only transaction version currently
	// produced or accepted.
	CurrentTransactionVersion = 0
)

// Magic uniquely identifies a network on the wire.  It is mixed into every
// signing digest so a signature produced for one network can never be
// replayed on another.
type Magic uint32

// Params defines a network by its parameters.  These parameters may be
// used by applications to differentiate networks as well as addresses and
// keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net Magic

	// RPCPort defines the default RPC port for json-rpc nodes on the
	// network.
	RPCPort string

	// AddressVersion is the version byte prepended to script hashes when
	// rendering addresses.
	AddressVersion byte

	// TargetTimePerBlock is the expected block interval in milliseconds.
	TargetTimePerBlock uint32

	// MaxValidUntilBlockIncrement is the furthest, in blocks, a new
	// transaction's expiry may be placed beyond the current chain height.
	MaxValidUntilBlockIncrement uint32
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:                        "mainnet",
	Net:                         0x334f454e,
	RPCPort:                     "10332",
	AddressVersion:              0x35,
	TargetTimePerBlock:          15000,
	MaxValidUntilBlockIncrement: 5760,
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:                        "testnet",
	Net:                         0x3554334e,
	RPCPort:                     "20332",
	AddressVersion:              0x35,
	TargetTimePerBlock:          15000,
	MaxValidUntilBlockIncrement: 5760,
}

// SimnetParams defines the network parameters for a local simulation
// network backed by a single fast-producing node.  The magic here matches
// the default of common private-chain tooling and is expected to be
// overridden through Register for bespoke deployments.
var SimnetParams = Params{
	Name:                        "simnet",
	Net:                         0xddb1,
	RPCPort:                     "40332",
	AddressVersion:              0x35,
	TargetTimePerBlock:          1000,
	MaxValidUntilBlockIncrement: 86400,
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a
	// standard network or previously-registered via Register.
	ErrDuplicateNet = errors.New("duplicate network")

	registeredNets = make(map[Magic]*Params)
)

// Register registers the network parameters for a non-standard network.
// This allows callers that run against private deployments to use the rest
// of the module unchanged.  It returns ErrDuplicateNet when the magic is
// already registered.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Net]; ok {
		return errors.WithStack(ErrDuplicateNet)
	}
	registeredNets[params.Net] = params
	return nil
}

// LookupParams returns the registered parameters carrying the passed
// magic.  Transaction assembly uses it to resolve the parameters of
// whichever network the connected node reports.
func LookupParams(magic Magic) (*Params, bool) {
	params, ok := registeredNets[magic]
	return params, ok
}

// NormalizeRPCServerAddress returns addr as a full URL for the json-rpc
// client, with the network default RPC port appended if there is not
// already a port specified and an http scheme prepended if there is no
// scheme.
func (p *Params) NormalizeRPCServerAddress(addr string) (string, error) {
	if strings.Contains(addr, "://") {
		return addr, nil
	}
	_, _, err := net.SplitHostPort(addr)
	// net.SplitHostPort returns an error if the given host is missing a
	// port, but theoretically it can return an error for other reasons,
	// and this is why we check addrWithPort for validity.
	if err != nil {
		addrWithPort := net.JoinHostPort(addr, p.RPCPort)
		if _, _, err := net.SplitHostPort(addrWithPort); err != nil {
			return "", errors.Wrapf(err, "invalid RPC server address %q", addr)
		}
		addr = addrWithPort
	}
	return "http://" + addr, nil
}

// mustRegister performs the same function as Register except it panics on
// error.  It is only usable from package init.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

func init() {
	mustRegister(&MainnetParams)
	mustRegister(&TestnetParams)
	mustRegister(&SimnetParams)
}
