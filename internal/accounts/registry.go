// Package accounts derives and memoizes per-customer account names for
// one conversion run.
package accounts

import (
	"strings"

	"github.com/ledgercast-dev/ledgercast/internal/model"
	"github.com/ledgercast-dev/ledgercast/internal/sanitize"
	"github.com/ledgercast-dev/ledgercast/internal/taxid"
)

// maxKeyRunes mirrors the sanitizer's segment cap; disambiguation suffixes
// must fit inside it too.
const maxKeyRunes = 50

// Roots are the account prefixes customer keys hang under.
type Roots struct {
	Cash      string
	Bank      string
	Sales     string
	VATOutput string
}

// DefaultRoots returns the standard chart layout.
func DefaultRoots() Roots {
	return Roots{
		Cash:      "Assets:Cash",
		Bank:      "Assets:Bank:Receivables",
		Sales:     "Income:Sales",
		VATOutput: "Liabilities:VAT:Output",
	}
}

// Collision records two distinct raw organizations that sanitized to the
// same key and could not be told apart by a tax ID.
type Collision struct {
	Key    model.CustomerKey
	First  string
	Second string
}

// Registry memoizes raw organization -> CustomerKey so the same
// organization always maps to the same sub-accounts within a run. It is
// scoped to one conversion session and never persisted.
type Registry struct {
	roots      Roots
	byRaw      map[string]model.CustomerKey
	rawByKey   map[model.CustomerKey]string
	collisions []Collision
}

// NewRegistry creates an empty Registry.
func NewRegistry(roots Roots) *Registry {
	return &Registry{
		roots:    roots,
		byRaw:    make(map[string]model.CustomerKey),
		rawByKey: make(map[model.CustomerKey]string),
	}
}

// Resolve returns the CustomerKey for a raw organization label. The key is
// the sanitized display name, with the tax-ID fragment held back: when two
// distinct labels sanitize to the same segment, the later one is
// disambiguated by appending its tax ID. Failing that, the collision is
// recorded and the shared key reused.
func (r *Registry) Resolve(rawOrg string) model.CustomerKey {
	if key, ok := r.byRaw[rawOrg]; ok {
		return key
	}

	_, display := taxid.Extract(rawOrg)
	key := model.CustomerKey(sanitize.Segment(display))
	owner, taken := r.rawByKey[key]
	if taken && owner != rawOrg {
		if alt, ok := r.disambiguate(key, rawOrg); ok {
			key = alt
		} else {
			r.collisions = append(r.collisions, Collision{Key: key, First: owner, Second: rawOrg})
		}
	}

	r.byRaw[rawOrg] = key
	if _, ok := r.rawByKey[key]; !ok {
		r.rawByKey[key] = rawOrg
	}
	return key
}

// disambiguate appends the tax-ID fragment to a colliding key, trimming
// the base so the result stays within the segment length cap.
func (r *Registry) disambiguate(key model.CustomerKey, rawOrg string) (model.CustomerKey, bool) {
	id, _ := taxid.Extract(rawOrg)
	if id == "" || strings.Contains(string(key), id) {
		return "", false
	}

	base := []rune(string(key))
	if max := maxKeyRunes - len(id) - 1; len(base) > max {
		base = base[:max]
	}
	alt := model.CustomerKey(strings.TrimRight(string(base), "-") + "-" + id)
	if _, taken := r.rawByKey[alt]; taken {
		return "", false
	}
	return alt, true
}

// Collisions returns the unresolved collisions seen so far, in order.
func (r *Registry) Collisions() []Collision {
	return r.collisions
}

// Asset returns the asset account for a key per the settlement kind.
func (r *Registry) Asset(kind model.PaymentKind, key model.CustomerKey) string {
	if kind == model.PaymentCash {
		return r.roots.Cash + ":" + string(key)
	}
	return r.roots.Bank + ":" + string(key)
}

// Income returns the sales income account for a key.
func (r *Registry) Income(key model.CustomerKey) string {
	return r.roots.Sales + ":" + string(key)
}

// VATOutput returns the output-VAT liability account for a key.
func (r *Registry) VATOutput(key model.CustomerKey) string {
	return r.roots.VATOutput + ":" + string(key)
}
