package calculator

// KeyOption is an option for scanning keys.
type KeyOption interface {
	keyOption(keyctx) keyctx
}

type (
	aliasopt struct {
		from, to string
	}
	aliasesopt map[string]string
	nodefopt   struct{}
)

// keyctx holds the settings for scanning keys.
type keyctx struct {
	// aliases maps scanned text to the symbol it enters. An empty value
	// disables a default alias.
	aliases map[string]string
	// nodefaults indicates that the default aliases are disabled.
	nodefaults bool
}

// alias returns the symbol entered by scanned text.
func (k *keyctx) alias(s string) string {
	if to, ok := k.aliases[s]; ok {
		if to == "" {
			return s
		}
		return to
	}
	if !k.nodefaults {
		if to, ok := defaultAliases[s]; ok {
			return to
		}
	}
	return s
}

// defaultAliases are the ASCII spellings of the builtin symbols.
var defaultAliases = map[string]string{
	"-":    "−",
	"*":    "×",
	"/":    "÷",
	"sqrt": "√",
	"pi":   "π",
	"neg":  "±",
	"sq":   "x²",
	"inv":  "x⁻¹",
	"csc":  "sin⁻¹",
	"sec":  "cos⁻¹",
}

// Alias makes the scanner enter the symbol to when it scans from. To disable
// a default alias, pass an empty to.
func Alias(from, to string) KeyOption {
	return aliasopt{from, to}
}

func (o aliasopt) keyOption(k keyctx) keyctx {
	k.aliases = copyAliases(k.aliases, 1)
	k.aliases[o.from] = o.to
	return k
}

// Aliases sets a group of aliases, as if by Alias for each entry.
func Aliases(m map[string]string) KeyOption {
	return aliasesopt(m)
}

func (o aliasesopt) keyOption(k keyctx) keyctx {
	k.aliases = copyAliases(k.aliases, len(o))
	for from, to := range o {
		k.aliases[from] = to
	}
	return k
}

// DisableDefaultAliases disables all default aliases, so that e.g. "*" is
// scanned as the symbol "*" instead of "×".
func DisableDefaultAliases() KeyOption {
	return nodefopt{}
}

func (nodefopt) keyOption(k keyctx) keyctx {
	k.nodefaults = true
	return k
}

// copyAliases always makes a copy so that options never share maps.
func copyAliases(m map[string]string, extra int) map[string]string {
	r := make(map[string]string, len(m)+extra)
	for k, v := range m {
		r[k] = v
	}
	return r
}
