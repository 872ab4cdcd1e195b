package dialogs

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ruralpay/assistant/internal/activity"
)

var numberPattern = regexp.MustCompile(`[-+]?(?:(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?|\.\d+)`)

var numberWords = map[string]int64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90, "hundred": 100,
}

// recognizeNumber extracts the number in a reply, written in digits
// ("1,000.50") or in words ("one hundred and twenty five"). A reply holding
// more than one number is ambiguous and not recognized.
func recognizeNumber(text string) (decimal.Decimal, bool) {
	digits := numberPattern.FindAllString(text, -1)
	words, wordRuns, ok := parseNumberWords(text)
	if !ok || len(digits)+wordRuns != 1 {
		return decimal.Decimal{}, false
	}
	if wordRuns == 1 {
		return decimal.NewFromInt(words), true
	}

	m := strings.ReplaceAll(strings.TrimPrefix(digits[0], "+"), ",", "")
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

type wordKind int

const (
	wordStart wordKind = iota
	wordUnit
	wordTeen
	wordTens
	wordHundred
)

func kindOf(word string, n int64) wordKind {
	switch {
	case word == "hundred":
		return wordHundred
	case n >= 20:
		return wordTens
	case n >= 10:
		return wordTeen
	default:
		return wordUnit
	}
}

// parseNumberWords sums runs of number words. It returns the value of the
// last run, the number of runs, and false when a run is malformed
// ("five twenty").
func parseNumberWords(text string) (value int64, runs int, ok bool) {
	tokens := strings.Fields(strings.ReplaceAll(strings.ToLower(text), "-", " "))

	var total int64
	prev := wordStart
	inRun := false
	for _, token := range tokens {
		word := strings.Trim(token, ".,!?$")
		n, isNumber := numberWords[word]
		if !isNumber {
			if word == "and" && inRun && prev == wordHundred {
				continue
			}
			inRun = false
			continue
		}
		if !inRun {
			inRun = true
			runs++
			total = 0
			prev = wordStart
		}

		kind := kindOf(word, n)
		switch kind {
		case wordHundred:
			if prev == wordHundred || total >= 100 {
				return 0, runs, false
			}
			if total == 0 {
				total = 1
			}
			total *= 100
		case wordTeen, wordTens:
			if prev != wordStart && prev != wordHundred {
				return 0, runs, false
			}
			total += n
		default:
			if prev == wordUnit || prev == wordTeen {
				return 0, runs, false
			}
			total += n
		}
		prev = kind
	}
	return total, runs, true
}

var (
	confirmYes = map[string]bool{
		"yes": true, "y": true, "yeah": true, "yep": true, "sure": true, "ok": true,
		"okay": true, "true": true, "1": true, "confirm": true, "of course": true,
	}
	confirmNo = map[string]bool{
		"no": true, "n": true, "nope": true, "nah": true, "false": true, "2": true, "not now": true,
	}
)

// recognizeConfirm maps a reply to yes or no; ok is false when it is neither.
func recognizeConfirm(text string) (yes bool, ok bool) {
	normalized := strings.Trim(strings.ToLower(strings.TrimSpace(text)), ".!")
	if confirmYes[normalized] {
		return true, true
	}
	if confirmNo[normalized] {
		return false, true
	}
	return false, false
}

func confirmPrompt(text string) activity.Activity {
	return activity.SuggestedActionsMessage(text, msgConfirmChoiceYes, msgConfirmChoiceNo)
}

type interruption int

const (
	interruptNone interruption = iota
	interruptHelp
	interruptCancel
)

func detectInterruption(text string) interruption {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "help", "?":
		return interruptHelp
	case "cancel", "quit":
		return interruptCancel
	default:
		return interruptNone
	}
}
