package button

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
)

type Variant string

const (
	VariantPrimary     Variant = "primary"
	VariantSecondary   Variant = "secondary"
	VariantGhost       Variant = "ghost"
	VariantDestructive Variant = "destructive"
)

const base = "inline-flex items-center justify-center rounded-md px-3 py-1.5 text-sm font-medium transition-colors focus-visible:outline-none focus-visible:ring-2 focus-visible:ring-slate-400"

var variants = map[Variant]string{
	VariantPrimary:     "bg-slate-900 text-white hover:bg-slate-700",
	VariantSecondary:   "border border-slate-300 bg-white text-slate-900 hover:bg-slate-100",
	VariantGhost:       "text-slate-700 hover:bg-slate-100",
	VariantDestructive: "text-red-700 hover:bg-red-50",
}

// Class returns the classes for a button of the given variant. Extra classes
// win over the defaults on conflict ("px-6" replaces "px-3").
func Class(variant Variant, extra ...string) string {
	classes := append([]string{base, variants[variant]}, extra...)
	return twmerge.Merge(classes...)
}
