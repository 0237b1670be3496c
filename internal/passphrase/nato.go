package passphrase

import (
	"strings"
	"unicode"
)

var letters = map[rune]string{
	'a': "Alpha", 'b': "Bravo", 'c': "Charlie", 'd': "Delta", 'e': "Echo",
	'f': "Foxtrot", 'g': "Golf", 'h': "Hotel", 'i': "India", 'j': "Juliett",
	'k': "Kilo", 'l': "Lima", 'm': "Mike", 'n': "November", 'o': "Oscar",
	'p': "Papa", 'q': "Quebec", 'r': "Romeo", 's': "Sierra", 't': "Tango",
	'u': "Uniform", 'v': "Victor", 'w': "Whiskey", 'x': "X-ray", 'y': "Yankee",
	'z': "Zulu",
}

var symbols = map[rune]string{
	'0': "Zero", '1': "One", '2': "Two", '3': "Three", '4': "Four",
	'5': "Five", '6': "Six", '7': "Seven", '8': "Eight", '9': "Nine",
	'-': "Dash", '.': "Period", ',': "Comma", '/': "Forward-Slash",
	'\\': "Back-Slash", '*': "Asterisk", '?': "Question-Mark",
	'!': "Exclamation-Mark", '@': "At-Symbol", '~': "Tilde", '#': "Hashtag",
	'$': "Dollar-Sign", '%': "Percent", '^': "Caret", '&': "Ampersand",
	'(': "Left-Parenthesis", ')': "Right-Parenthesis", '{': "Left-Brace",
	'}': "Right-Brace", '[': "Left-Bracket", ']': "Right-Bracket",
	'+': "Plus", '_': "Underscore", '<': "Less-Than", '>': "Greater-Than",
	'=': "Equal", ':': "Colon", ';': "Semi-Colon", '|': "Vertical-Bar",
	'"': "Quotation-Mark", '\'': "Apostrophe", '`': "Grave-Accent",
}

// CodeWord spells one character for reading aloud. Letters carry their case.
func CodeWord(c rune) string {
	if word, ok := letters[unicode.ToLower(c)]; ok {
		if unicode.IsUpper(c) {
			return "Upper " + word
		}
		return "Lower " + word
	}
	if word, ok := symbols[c]; ok {
		return word
	}
	return string(c)
}

// Spell returns one "<char>: <code word>" line per character of s.
func Spell(s string) string {
	var b strings.Builder
	for _, c := range s {
		b.WriteRune(c)
		b.WriteString(": ")
		b.WriteString(CodeWord(c))
		b.WriteByte('\n')
	}
	return b.String()
}
