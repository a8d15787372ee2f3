package cli

import (
	"sort"
	"strconv"
	"strings"
)

type flagKind uint8

const (
	flagBool flagKind = iota + 1
	flagString
	flagStringSlice
)

// FlagSet is a typed flag registry. Values are bound to variables returned at
// registration time.
type FlagSet struct {
	byLong  map[string]*flagDef
	byShort map[rune]*flagDef
}

type flagDef struct {
	name      string
	shorthand rune
	usage     string
	kind      flagKind

	boolPtr        *bool
	stringPtr      *string
	stringSlicePtr *[]string
}

func newFlagSet() *FlagSet {
	return &FlagSet{
		byLong:  map[string]*flagDef{},
		byShort: map[rune]*flagDef{},
	}
}

// Bool registers a boolean flag and returns a pointer to its value.
func (fs *FlagSet) Bool(name string, shorthand rune, def bool, usage string) *bool {
	ptr := new(bool)
	*ptr = def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagBool, boolPtr: ptr})
	return ptr
}

// String registers a string flag and returns a pointer to its value.
func (fs *FlagSet) String(name string, shorthand rune, def string, usage string) *string {
	ptr := new(string)
	*ptr = def
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagString, stringPtr: ptr})
	return ptr
}

// StringSlice registers a repeatable string flag; each occurrence appends to
// the returned slice.
func (fs *FlagSet) StringSlice(name string, shorthand rune, usage string) *[]string {
	ptr := new([]string)
	fs.add(&flagDef{name: name, shorthand: shorthand, usage: usage, kind: flagStringSlice, stringSlicePtr: ptr})
	return ptr
}

func (fs *FlagSet) add(def *flagDef) {
	if def.name == "" {
		panic("cli: flag name must be non-empty")
	}
	if _, ok := fs.byLong[def.name]; ok {
		panic("cli: duplicate flag: --" + def.name)
	}
	fs.byLong[def.name] = def
	if def.shorthand != 0 {
		if _, ok := fs.byShort[def.shorthand]; ok {
			panic("cli: duplicate shorthand flag: -" + string(def.shorthand))
		}
		fs.byShort[def.shorthand] = def
	}
}

// parse consumes argv, setting bound flag variables and returning positional
// args. helpRequested is true when -h/--help appears before "--".
func (fs *FlagSet) parse(argv []string) (positional []string, helpRequested bool, err error) {
	for i := 0; i < len(argv); i++ {
		token := argv[i]

		if token == "--" {
			positional = append(positional, argv[i+1:]...)
			break
		}
		if token == "-h" || token == "--help" {
			return nil, true, nil
		}
		if !isFlagToken(token) {
			positional = append(positional, token)
			continue
		}

		def, inlineValue, hasInline, perr := fs.lookup(token)
		if perr != nil {
			return nil, false, perr
		}

		var raw string
		switch {
		case hasInline:
			raw = inlineValue
		case def.kind == flagBool:
			// A following literal bool is consumed; otherwise "true".
			if i+1 < len(argv) {
				if _, berr := strconv.ParseBool(argv[i+1]); berr == nil {
					raw = argv[i+1]
					i++
					break
				}
			}
			raw = "true"
		default:
			if i+1 >= len(argv) || argv[i+1] == "--" {
				return nil, false, Usagef("flag needs a value: %s", token)
			}
			raw = argv[i+1]
			i++
		}

		if serr := setFlagValue(def, raw); serr != nil {
			return nil, false, Usagef("invalid value for --%s: %v", def.name, serr)
		}
	}
	return positional, false, nil
}

// lookup resolves a flag token ("--name", "--name=value", "-n", "-n=value")
// to its definition and any inline value.
func (fs *FlagSet) lookup(token string) (def *flagDef, inlineValue string, hasInline bool, err error) {
	body := strings.TrimLeft(token, "-")
	name := body
	if i := strings.IndexByte(body, '='); i >= 0 {
		name = body[:i]
		inlineValue = body[i+1:]
		hasInline = true
	}

	if d, ok := fs.byLong[name]; ok {
		return d, inlineValue, hasInline, nil
	}
	if len(name) == 1 {
		if d, ok := fs.byShort[rune(name[0])]; ok {
			return d, inlineValue, hasInline, nil
		}
	}
	return nil, "", false, Usagef("unknown flag: %s", token)
}

func setFlagValue(def *flagDef, raw string) error {
	switch def.kind {
	case flagBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*def.boolPtr = v
	case flagString:
		*def.stringPtr = raw
	case flagStringSlice:
		*def.stringSlicePtr = append(*def.stringSlicePtr, raw)
	}
	return nil
}

func isFlagToken(token string) bool {
	return strings.HasPrefix(token, "-") && token != "-" // "-" is a valid positional arg.
}

type flagHelp struct {
	def  *flagDef
	kind string
}

func flagsForHelp(fs *FlagSet) []flagHelp {
	var helps []flagHelp
	for _, def := range fs.byLong {
		kind := ""
		switch def.kind {
		case flagString:
			kind = "string"
		case flagStringSlice:
			kind = "string (repeatable)"
		}
		helps = append(helps, flagHelp{def: def, kind: kind})
	}
	sort.Slice(helps, func(i, j int) bool { return helps[i].def.name < helps[j].def.name })
	return helps
}
