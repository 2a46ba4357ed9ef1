// Package assets holds the registry of issued assets the gateway knows how
// to trust and transfer. The registry is immutable at runtime; adding an
// asset requires a code change and redeploy.
package assets

import (
	"sort"
	"strings"
)

// Info describes a known issued asset.
type Info struct {
	Code   string
	Issuer string
	Limit  string // Default trustline limit, decimal string
}

// Registry maps uppercase asset codes to issuer and default trust limit.
// Construct with New and inject it where needed; there is no process-wide
// singleton so tests can substitute their own registries.
type Registry struct {
	byCode map[string]Info
}

// New builds a registry from the given assets. Codes are normalized to
// uppercase; a later entry with the same code wins.
func New(infos ...Info) *Registry {
	byCode := make(map[string]Info, len(infos))
	for _, info := range infos {
		code := strings.ToUpper(info.Code)
		info.Code = code
		byCode[code] = info
	}
	return &Registry{byCode: byCode}
}

// Default returns the registry of assets supported in production.
func Default() *Registry {
	return New(
		Info{Code: "USDT", Issuer: "GDHP3Z3R5Q6Q4LKWMYZ5NSB6HK2UBW7J2RD2BZ5GK37Q6TJQGZUX5X", Limit: "1000000"},
		Info{Code: "USDC", Issuer: "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN", Limit: "1000000"},
		Info{Code: "EURT", Issuer: "GAP5LETOV6YIE62YAM56STDANPRDO7ZFDBGSNHJQIYGGKSMOZAHOOS2S", Limit: "1000000"},
		Info{Code: "BTC", Issuer: "GCKFBEIYV2U22IO5KDLO7H6P4CXW4ZBKC7USG5JTCL6S2DCQI3M4R7", Limit: "1000000"},
		Info{Code: "ETH", Issuer: "GCKFBEIYV2U22IO5KDLO7H6P4CXW4ZBKC7USG5JTCL6S2DCQI3M4R7", Limit: "1000000"},
	)
}

// Lookup resolves an asset by code, case-insensitively.
func (r *Registry) Lookup(code string) (Info, bool) {
	info, ok := r.byCode[strings.ToUpper(code)]
	return info, ok
}

// Available returns the registered asset codes in sorted order, for use in
// error messages.
func (r *Registry) Available() []string {
	codes := make([]string, 0, len(r.byCode))
	for code := range r.byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
