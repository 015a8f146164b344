package extract

import "github.com/veldtlabs/multirag/core"

// defaultSeparators is the generic recursive-splitting order for prose.
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// languageSeparators keys language-aware splitting rules by detected
// language. Separators are tried in order, so declaration boundaries win
// over paragraph and line breaks.
var languageSeparators = map[core.Language][]string{
	core.LangGo: {
		"\nfunc ", "\nconst ", "\nvar ", "\ntype ",
		"\nif ", "\nfor ", "\nswitch ", "\ncase ",
		"\n\n", "\n", " ", "",
	},
	core.LangPython: {
		"\nclass ", "\ndef ", "\n\tdef ",
		"\n\n", "\n", " ", "",
	},
	core.LangJavaScript: {
		"\nfunction ", "\nconst ", "\nlet ", "\nvar ", "\nclass ",
		"\nif ", "\nfor ", "\nwhile ", "\nswitch ", "\ncase ", "\ndefault ",
		"\n\n", "\n", " ", "",
	},
	core.LangTypeScript: {
		"\nenum ", "\ninterface ", "\nnamespace ", "\ntype ", "\nclass ",
		"\nfunction ", "\nconst ", "\nlet ", "\nvar ",
		"\nif ", "\nfor ", "\nwhile ", "\nswitch ", "\ncase ", "\ndefault ",
		"\n\n", "\n", " ", "",
	},
	core.LangJava: {
		"\nclass ", "\npublic ", "\nprotected ", "\nprivate ", "\nstatic ",
		"\nif ", "\nfor ", "\nwhile ", "\nswitch ", "\ncase ",
		"\n\n", "\n", " ", "",
	},
	core.LangC: {
		"\nvoid ", "\nint ", "\nfloat ", "\ndouble ", "\nstruct ",
		"\nif ", "\nfor ", "\nwhile ", "\nswitch ", "\ncase ",
		"\n\n", "\n", " ", "",
	},
	core.LangCPP: {
		"\nclass ", "\nvoid ", "\nint ", "\nfloat ", "\ndouble ",
		"\nif ", "\nfor ", "\nwhile ", "\nswitch ", "\ncase ",
		"\n\n", "\n", " ", "",
	},
	core.LangRust: {
		"\nfn ", "\nconst ", "\nlet ", "\nimpl ", "\nstruct ", "\nenum ",
		"\nif ", "\nwhile ", "\nfor ", "\nloop ", "\nmatch ",
		"\n\n", "\n", " ", "",
	},
	core.LangRuby: {
		"\ndef ", "\nclass ", "\nmodule ",
		"\nif ", "\nunless ", "\nwhile ", "\nfor ", "\nbegin ", "\nrescue ",
		"\n\n", "\n", " ", "",
	},
}

// separatorsFor returns the splitting rules for a language, falling back to
// the generic prose rules for unknown languages.
func separatorsFor(lang core.Language) []string {
	if seps, ok := languageSeparators[lang]; ok {
		return seps
	}
	return defaultSeparators
}
