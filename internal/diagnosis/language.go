package diagnosis

// DetectLanguage classifies text as "ja" when it contains any hiragana,
// katakana, or CJK ideograph, and "en" otherwise.
func DetectLanguage(text string) string {
	for _, r := range text {
		switch {
		case r >= 0x3040 && r <= 0x309f: // hiragana
			return "ja"
		case r >= 0x30a0 && r <= 0x30ff: // katakana
			return "ja"
		case r >= 0x4e00 && r <= 0x9fff: // CJK ideographs
			return "ja"
		}
	}
	return "en"
}
