package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ineffable/internal/input/source"
)

type keyPair struct {
	key tcell.Key
	src source.Source
}

// Several tcell names share a value (KeyTab is KeyCtrlI), so the table is
// built at init instead of as a literal.
var named = func() map[tcell.Key]source.Source {
	pairs := []keyPair{
		{tcell.KeyEnter, source.KeyReturn},
		{tcell.KeyTab, source.KeyTab},
		{tcell.KeyBackspace, source.KeyBackspace},
		{tcell.KeyBackspace2, source.KeyBackspace},
		{tcell.KeyEscape, source.KeyEscape},
		{tcell.KeyDelete, source.KeyDelete},
		{tcell.KeyInsert, source.KeyInsert},
		{tcell.KeyHome, source.KeyHome},
		{tcell.KeyEnd, source.KeyEnd},
		{tcell.KeyPgUp, source.KeyPageUp},
		{tcell.KeyPgDn, source.KeyPageDown},
		{tcell.KeyUp, source.KeyUp},
		{tcell.KeyDown, source.KeyDown},
		{tcell.KeyLeft, source.KeyLeft},
		{tcell.KeyRight, source.KeyRight},
		{tcell.KeyF1, source.KeyF1},
		{tcell.KeyF2, source.KeyF2},
		{tcell.KeyF3, source.KeyF3},
		{tcell.KeyF4, source.KeyF4},
		{tcell.KeyF5, source.KeyF5},
		{tcell.KeyF6, source.KeyF6},
		{tcell.KeyF7, source.KeyF7},
		{tcell.KeyF8, source.KeyF8},
		{tcell.KeyF9, source.KeyF9},
		{tcell.KeyF10, source.KeyF10},
		{tcell.KeyF11, source.KeyF11},
		{tcell.KeyF12, source.KeyF12},
	}
	m := make(map[tcell.Key]source.Source, len(pairs))
	for _, p := range pairs {
		m[p.key] = p.src
	}
	return m
}()

type runeKey struct {
	src   source.Source
	shift bool
}

var punctuation = map[rune]runeKey{
	' ':  {source.KeySpace, false},
	'-':  {source.KeyMinus, false},
	'_':  {source.KeyMinus, true},
	'=':  {source.KeyEqual, false},
	'+':  {source.KeyEqual, true},
	',':  {source.KeyComma, false},
	'<':  {source.KeyComma, true},
	'.':  {source.KeyPeriod, false},
	'>':  {source.KeyPeriod, true},
	'/':  {source.KeySlash, false},
	'?':  {source.KeySlash, true},
	';':  {source.KeySemicolon, false},
	':':  {source.KeySemicolon, true},
	'\'': {source.KeyQuote, false},
	'"':  {source.KeyQuote, true},
	'[':  {source.KeyBracketLeft, false},
	'{':  {source.KeyBracketLeft, true},
	']':  {source.KeyBracketRight, false},
	'}':  {source.KeyBracketRight, true},
	'\\': {source.KeyBackslash, false},
	'|':  {source.KeyBackslash, true},
	'`':  {source.KeyBackquote, false},
	'~':  {source.KeyBackquote, true},
	')':  {source.KeyDigit0, true},
	'!':  {source.KeyDigit1, true},
	'@':  {source.KeyDigit2, true},
	'#':  {source.KeyDigit3, true},
	'$':  {source.KeyDigit4, true},
	'%':  {source.KeyDigit5, true},
	'^':  {source.KeyDigit6, true},
	'&':  {source.KeyDigit7, true},
	'*':  {source.KeyDigit8, true},
	'(':  {source.KeyDigit9, true},
}

// Translate returns the sources held by a key event: the key itself plus
// the modifiers reported with it. Shifted characters include ShiftLeft.
// Unmapped keys yield nil.
func Translate(ev *tcell.EventKey) []source.Source {
	var out []source.Source
	k := ev.Key()

	switch {
	case k == tcell.KeyRune:
		key, shift, ok := runeSource(ev.Rune())
		if !ok {
			return nil
		}
		out = append(out, key)
		if shift {
			out = append(out, source.KeyShiftLeft)
		}
	case hasNamed(k):
		out = append(out, named[k])
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		out = append(out, source.KeyA+source.Source(k-tcell.KeyCtrlA), source.KeyControlLeft)
	case k == tcell.KeyCtrlSpace:
		out = append(out, source.KeySpace, source.KeyControlLeft)
	default:
		return nil
	}

	mod := ev.Modifiers()
	if mod&tcell.ModShift != 0 {
		out = appendOnce(out, source.KeyShiftLeft)
	}
	if mod&tcell.ModCtrl != 0 {
		out = appendOnce(out, source.KeyControlLeft)
	}
	if mod&tcell.ModAlt != 0 {
		out = appendOnce(out, source.KeyAltLeft)
	}
	if mod&tcell.ModMeta != 0 {
		out = appendOnce(out, source.KeySuperLeft)
	}
	return out
}

func hasNamed(k tcell.Key) bool {
	_, ok := named[k]
	return ok
}

func runeSource(r rune) (source.Source, bool, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return source.KeyA + source.Source(r-'a'), false, true
	case r >= 'A' && r <= 'Z':
		return source.KeyA + source.Source(r-'A'), true, true
	case r >= '0' && r <= '9':
		return source.KeyDigit0 + source.Source(r-'0'), false, true
	}
	if rk, ok := punctuation[r]; ok {
		return rk.src, rk.shift, true
	}
	return 0, false, false
}

func appendOnce(list []source.Source, s source.Source) []source.Source {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}
