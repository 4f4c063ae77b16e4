// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"crypto/sha256"
	"encoding/binary"
)

// InteropService names a system call exposed by the virtual machine to
// scripts.  On the wire a service is identified by a 4-byte tag derived
// from its name, never by the name itself.
type InteropService string

// Interop services callable through OP_SYSCALL.
const (
	SystemCryptoCheckSig      InteropService = "System.Crypto.CheckSig"
	SystemCryptoCheckMultisig InteropService = "System.Crypto.CheckMultisig"

	SystemContractCall                  InteropService = "System.Contract.Call"
	SystemContractCallNative            InteropService = "System.Contract.CallNative"
	SystemContractGetCallFlags          InteropService = "System.Contract.GetCallFlags"
	SystemContractCreateStandardAccount InteropService = "System.Contract.CreateStandardAccount"
	SystemContractCreateMultisigAccount InteropService = "System.Contract.CreateMultisigAccount"
	SystemContractNativeOnPersist       InteropService = "System.Contract.NativeOnPersist"
	SystemContractNativePostPersist     InteropService = "System.Contract.NativePostPersist"

	SystemIteratorNext  InteropService = "System.Iterator.Next"
	SystemIteratorValue InteropService = "System.Iterator.Value"

	SystemRuntimePlatform                 InteropService = "System.Runtime.Platform"
	SystemRuntimeGetTrigger               InteropService = "System.Runtime.GetTrigger"
	SystemRuntimeGetTime                  InteropService = "System.Runtime.GetTime"
	SystemRuntimeGetScriptContainer       InteropService = "System.Runtime.GetScriptContainer"
	SystemRuntimeGetExecutingScriptHash   InteropService = "System.Runtime.GetExecutingScriptHash"
	SystemRuntimeGetCallingScriptHash     InteropService = "System.Runtime.GetCallingScriptHash"
	SystemRuntimeGetEntryScriptHash       InteropService = "System.Runtime.GetEntryScriptHash"
	SystemRuntimeCheckWitness             InteropService = "System.Runtime.CheckWitness"
	SystemRuntimeGetInvocationCounter     InteropService = "System.Runtime.GetInvocationCounter"
	SystemRuntimeLog                      InteropService = "System.Runtime.Log"
	SystemRuntimeNotify                   InteropService = "System.Runtime.Notify"
	SystemRuntimeGetNotifications         InteropService = "System.Runtime.GetNotifications"
	SystemRuntimeGasLeft                  InteropService = "System.Runtime.GasLeft"
	SystemRuntimeBurnGas                  InteropService = "System.Runtime.BurnGas"
	SystemRuntimeGetNetwork               InteropService = "System.Runtime.GetNetwork"
	SystemRuntimeGetRandom                InteropService = "System.Runtime.GetRandom"

	SystemStorageGetContext         InteropService = "System.Storage.GetContext"
	SystemStorageGetReadOnlyContext InteropService = "System.Storage.GetReadOnlyContext"
	SystemStorageAsReadOnly         InteropService = "System.Storage.AsReadOnly"
	SystemStorageGet                InteropService = "System.Storage.Get"
	SystemStorageFind               InteropService = "System.Storage.Find"
	SystemStoragePut                InteropService = "System.Storage.Put"
	SystemStorageDelete             InteropService = "System.Storage.Delete"
)

// Tag returns the 4-byte identifier of the service: the leading bytes of
// the SHA-256 digest of its name.  The tag follows OP_SYSCALL on the wire
// in exactly this byte order.
func (s InteropService) Tag() [4]byte {
	digest := sha256.Sum256([]byte(s))
	var tag [4]byte
	copy(tag[:], digest[:4])
	return tag
}

// ID returns the service tag interpreted as a little-endian uint32, the
// form execution engines use for table lookups.
func (s InteropService) ID() uint32 {
	tag := s.Tag()
	return binary.LittleEndian.Uint32(tag[:])
}

// Price returns the base execution fee of the system call in fee units.
func (s InteropService) Price() uint64 {
	switch s {
	case SystemRuntimePlatform, SystemRuntimeGetTrigger,
		SystemRuntimeGetTime, SystemRuntimeGetScriptContainer,
		SystemRuntimeGetNetwork:
		return 1 << 3

	case SystemIteratorValue, SystemRuntimeGetExecutingScriptHash,
		SystemRuntimeGetCallingScriptHash, SystemRuntimeGetEntryScriptHash,
		SystemRuntimeGetInvocationCounter, SystemRuntimeGasLeft,
		SystemRuntimeBurnGas, SystemRuntimeGetRandom,
		SystemStorageGetContext, SystemStorageGetReadOnlyContext,
		SystemStorageAsReadOnly:
		return 1 << 4

	case SystemContractGetCallFlags, SystemRuntimeCheckWitness:
		return 1 << 10

	case SystemRuntimeGetNotifications:
		return 1 << 12

	case SystemCryptoCheckSig, SystemContractCall,
		SystemContractCreateStandardAccount, SystemIteratorNext,
		SystemRuntimeLog, SystemRuntimeNotify, SystemStorageGet,
		SystemStorageFind, SystemStoragePut, SystemStorageDelete:
		return 1 << 15

	default:
		return 0
	}
}
