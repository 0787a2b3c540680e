package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainCatalog = "vecwrap/catalog/v1"
	DomainCall    = "vecwrap/call/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CatalogHash computes the identity of a compiled catalog.
// Two catalogs hash equal iff every routine, signature, macro and error
// description is equal, independent of map ordering.
func CatalogHash(c *Catalog) (string, error) {
	routines := make([]any, len(c.Routines))
	for i := range c.Routines {
		routines[i] = routineObject(&c.Routines[i])
	}
	canonical, err := MarshalCanonical(map[string]any{
		"ir_version": IRVersion,
		"routines":   routines,
	})
	if err != nil {
		return "", fmt.Errorf("CatalogHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainCatalog, canonical), nil
}

// CallID computes a stable identifier for a journaled call.
func CallID(session, variant string, seq int64) string {
	canonical, err := MarshalCanonical(map[string]any{
		"session": session,
		"variant": variant,
		"seq":     seq,
	})
	if err != nil {
		// Only strings and ints above; cannot fail.
		panic(err)
	}
	return hashWithDomain(DomainCall, canonical)
}

func routineObject(r *RoutineSpec) map[string]any {
	obj := map[string]any{
		"name":    r.Name,
		"inputs":  argObjects(r.Signature.Inputs),
		"outputs": argObjects(r.Signature.Outputs),
	}
	if r.Abstract != "" {
		obj["abstract"] = r.Abstract
	}
	if r.Vectorize != "" {
		obj["vectorize"] = r.Vectorize
		obj["params"] = append([]int{}, r.Params...)
	}
	if r.Error != nil {
		obj["error"] = map[string]any{
			"flag":      r.Error.Flag,
			"trigger":   r.Error.Trigger,
			"condition": r.Error.Condition,
			"message":   r.Error.Message,
		}
	}
	return obj
}

func argObjects(args []ArgDesc) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = map[string]any{
			"name":       a.Name,
			"kind":       string(a.Kind),
			"type":       a.Type,
			"item_shape": append([]int{}, a.ItemShape...),
		}
	}
	return out
}
