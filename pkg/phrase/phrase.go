// Package phrase decomposes a wall-clock time into the ordered sequence of
// speech clips that speaks it, e.g. 13:05 -> "it is" "one" "oh" "five" "pm".
//
// Translate is total over all 1440 hour/minute combinations and has no side
// effects. Clip identifiers follow the store's 8.3 naming convention.
package phrase

import "github.com/tockworks/go-tock/pkg/clips"

// Fixed clip vocabulary, provisioned with the device.
const (
	// Announce opens every phrase ("it is...").
	Announce clips.ID = "itis"

	// AM and PM close every phrase.
	AM clips.ID = "am"
	PM clips.ID = "pm"
)

// hourClips maps hour%12 to the spoken 12-hour word. Index 0 is "twelve",
// covering both midnight and noon; AM/PM carries the distinction.
var hourClips = [12]clips.ID{
	"h12", "h01", "h02", "h03", "h04", "h05",
	"h06", "h07", "h08", "h09", "h10", "h11",
}

// exactTens maps the tens digit to the clip spoken when the ones digit is
// zero: "o'clock", "ten", "twenty", ... "fifty".
var exactTens = [6]clips.ID{
	"oclock", "m10", "m20", "m30", "m40", "m50",
}

// teens maps minute-11 to the spoken teen: "eleven" ... "nineteen".
var teens = [9]clips.ID{
	"m11", "m12", "m13", "m14", "m15", "m16", "m17", "m18", "m19",
}

// tensPrefix maps the tens digit to the prefix spoken before a ones clip:
// "oh", -, "twenty-", "thirty-", "forty-", "fifty-". Index 1 is unused; the
// teens take that branch before a prefix is ever consulted.
var tensPrefix = [6]clips.ID{
	"oh", "", "t20", "t30", "t40", "t50",
}

// ones maps minute%10-1 to the spoken ones digit: "one" ... "nine".
var ones = [9]clips.ID{
	"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9",
}

// Translate maps a time of day to the clip sequence that speaks it.
// hour is 0-23, minute 0-59; out-of-range values are reduced into range so
// the function stays total.
func Translate(hour, minute int) []clips.ID {
	hour = ((hour % 24) + 24) % 24
	minute = ((minute % 60) + 60) % 60

	period := AM
	if hour >= 12 {
		period = PM
	}

	seq := make([]clips.ID, 0, 5)
	seq = append(seq, Announce, hourClips[hour%12])

	hi, lo := minute/10, minute%10
	switch {
	case lo == 0:
		// On the tens: "o'clock", "ten", "twenty", ... No ones clip.
		seq = append(seq, exactTens[hi])
	case hi == 1:
		// 11-19 are single words.
		seq = append(seq, teens[lo-1])
	default:
		seq = append(seq, tensPrefix[hi], ones[lo-1])
	}

	return append(seq, period)
}

// Vocabulary returns every clip identifier Translate can emit. Used at
// startup to probe the store for missing assets before the first press.
func Vocabulary() []clips.ID {
	vocab := []clips.ID{Announce, AM, PM}
	vocab = append(vocab, hourClips[:]...)
	vocab = append(vocab, exactTens[:]...)
	vocab = append(vocab, teens[:]...)
	for i, p := range tensPrefix {
		if i == 1 {
			continue
		}
		vocab = append(vocab, p)
	}
	return append(vocab, ones[:]...)
}
