package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// Validate checks structural and semantic constraints of a snapshot.
func Validate(t *Tables) error {
	var errs []string

	for _, id := range sortedKeys(t.Packages) {
		errs = append(errs, validatePackage(id, t.Packages[id])...)
	}
	for _, id := range sortedKeys(t.Scrolls) {
		errs = append(errs, validateScroll(id, t.Scrolls[id])...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("content validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePackage(id string, p Package) []string {
	var errs []string
	prefix := "packages." + id

	if err := structValidator.Struct(p); err != nil {
		errs = append(errs, fieldErrors(prefix, err)...)
	}
	if len(p.Contents.Guaranteed) == 0 && len(p.Contents.Random) == 0 {
		errs = append(errs, prefix+" has no guaranteed or random contents")
	}

	for i, e := range p.Contents.Guaranteed {
		errs = append(errs, validateEntry(fmt.Sprintf("%s.guaranteed[%d]", prefix, i), e, false)...)
	}
	for i, e := range p.Contents.Random {
		errs = append(errs, validateEntry(fmt.Sprintf("%s.random[%d]", prefix, i), e, true)...)
	}
	if q := p.Contents.RandomCount; q != nil {
		errs = append(errs, validateQuantity(prefix+".randomCount", *q)...)
	}
	return errs
}

func validateEntry(path string, e Entry, weighted bool) []string {
	var errs []string
	if e.Ref.ID == "" {
		errs = append(errs, path+" identifier must not be empty")
	}
	if weighted && !(e.Weight > 0) {
		errs = append(errs, path+".weight must be > 0")
	}
	if e.Count != nil {
		errs = append(errs, validateQuantity(path+".count", *e.Count)...)
		if !weighted && e.Count.IsRange() {
			errs = append(errs, path+".count must be a fixed number for guaranteed entries")
		}
	}
	return errs
}

func validateQuantity(path string, q Quantity) []string {
	var errs []string
	if q.Min < 0 {
		errs = append(errs, path+" must be >= 0")
	}
	if q.Min > q.Max {
		errs = append(errs, path+" must satisfy min <= max")
	}
	return errs
}

func validateScroll(id string, s Scroll) []string {
	var errs []string
	prefix := "scrolls." + id

	if err := structValidator.Struct(s); err != nil {
		errs = append(errs, fieldErrors(prefix, err)...)
	}
	if s.Effects.Empty() {
		errs = append(errs, prefix+" grants no effects")
	}
	for name, b := range map[string]*TimedBonus{
		"expBoost":  s.Effects.ExpBoost,
		"goldBoost": s.Effects.GoldBoost,
		"dropBoost": s.Effects.DropBoost,
	} {
		if b != nil && !(b.Multiplier > 0) {
			errs = append(errs, fmt.Sprintf("%s.effects.%s.multiplier must be > 0", prefix, name))
		}
	}
	if g := s.Effects.EnhancementGuarantee; g != nil && !g.Guaranteed && !(g.Multiplier > 0) {
		errs = append(errs, prefix+".effects.enhancementGuarantee needs guaranteed: true or a multiplier > 0")
	}
	sort.Strings(errs)
	return errs
}

// fieldErrors flattens validator errors into "prefix.Field tag" strings.
func fieldErrors(prefix string, err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{prefix + ": " + err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		out = append(out, fmt.Sprintf("%s.%s failed %s", prefix, ns, fe.Tag()))
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
