package renderer

// Tokenize splits text into words, single spaces and single newlines,
// preserving order. Only ' ' and '\n' separate words; every other byte,
// tabs included, belongs to a word.
func Tokenize(text string) []Token {
	return appendTokens(nil, text)
}

// appendTokens appends the tokens of text to dst.
func appendTokens(dst []Token, text string) []Token {
	start := -1
	for i := 0; i < len(text); i++ {
		var kind TokenKind
		switch text[i] {
		case ' ':
			kind = Space
		case '\n':
			kind = Newline
		default:
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			dst = append(dst, Token{Kind: Word, Text: text[start:i]})
			start = -1
		}
		dst = append(dst, Token{Kind: kind, Text: text[i : i+1]})
	}
	if start >= 0 {
		dst = append(dst, Token{Kind: Word, Text: text[start:]})
	}
	return dst
}
