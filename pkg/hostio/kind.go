// Package hostio classifies host-interaction events found in a raw
// Stylus trace and aggregates them into per-kind counts. Individual
// event costs are not separately recorded by the tracer, so the
// package only reports totals; apportionment across kinds happens
// downstream.
package hostio

// Kind is a host-interaction category. The set is closed: anything the
// classifier does not recognize lands in KindOther.
type Kind string

const (
	KindStorageLoad  Kind = "StorageLoad"
	KindStorageStore Kind = "StorageStore"
	KindCall         Kind = "Call"
	KindStaticCall   Kind = "StaticCall"
	KindDelegateCall Kind = "DelegateCall"
	KindCreate       Kind = "Create"
	KindLog          Kind = "Log"
	// KindSelfDestruct is part of the closed set but unreachable from
	// Classify: the Stylus host API exposes no self-destruct hostio.
	KindSelfDestruct   Kind = "SelfDestruct"
	KindAccountBalance Kind = "AccountBalance"
	KindBlockHash      Kind = "BlockHash"
	KindOther          Kind = "Other"
)

// Kinds lists every Kind in a fixed order for deterministic iteration.
var Kinds = []Kind{
	KindStorageLoad,
	KindStorageStore,
	KindCall,
	KindStaticCall,
	KindDelegateCall,
	KindCreate,
	KindLog,
	KindSelfDestruct,
	KindAccountBalance,
	KindBlockHash,
	KindOther,
}

// kindByName maps stylusTracer hostio names onto kinds. Names follow
// the Nitro hostio naming scheme (storage_load_bytes32, call_contract,
// emit_log, ...).
var kindByName = map[string]Kind{
	"storage_load_bytes32":    KindStorageLoad,
	"storage_cache_bytes32":   KindStorageStore,
	"storage_flush_cache":     KindStorageStore,
	"transient_load_bytes32":  KindStorageLoad,
	"transient_store_bytes32": KindStorageStore,
	"call_contract":           KindCall,
	"static_call_contract":    KindStaticCall,
	"delegate_call_contract":  KindDelegateCall,
	"create1":                 KindCreate,
	"create2":                 KindCreate,
	"emit_log":                KindLog,
	"account_balance":         KindAccountBalance,
	"block_hash":              KindBlockHash,
}

// Classify maps a hostio event name onto its Kind.
func Classify(name string) Kind {
	if kind, ok := kindByName[name]; ok {
		return kind
	}

	return KindOther
}
