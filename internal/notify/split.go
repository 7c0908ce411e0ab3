package notify

import "strings"

// MaxMessageLen — лимит Telegram на длину одного сообщения.
const MaxMessageLen = 4096

// SplitText режет текст на части не длиннее maxLen символов, предпочитая
// разрыв по последнему переводу строки, затем по последнему пробелу, чтобы
// не рвать строку посередине.
func SplitText(text string, maxLen int) []string {
	var parts []string
	runes := []rune(text)
	for len(runes) > 0 {
		if len(runes) <= maxLen {
			parts = append(parts, string(runes))
			break
		}
		window := runes[:maxLen]
		splitAt := lastIndexRune(window, '\n')
		if splitAt <= 0 {
			splitAt = lastIndexRune(window, ' ')
		}
		if splitAt <= 0 {
			splitAt = maxLen
		}
		parts = append(parts, string(runes[:splitAt]))
		rest := string(runes[splitAt:])
		runes = []rune(strings.TrimLeft(rest, " \n\t"))
	}
	return parts
}

func lastIndexRune(rs []rune, r rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == r {
			return i
		}
	}
	return -1
}
