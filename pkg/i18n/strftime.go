package i18n

import (
	"fmt"
	"strings"
	"time"
)

var (
	localizedDateTime = NewTranslation("const_datetimeformat", "%a %b %d %H:%M:%S %Y", "Localized Time and Date format string")
	localizedDate     = NewTranslation("const_dateformat", "%m/%d/%Y", "Localized Date only format string")
	localizedTime     = NewTranslation("const_timeformat", "%H:%M:%S", "Localized Time only format string")

	dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
)

func dayName(lang string, t *Translator, d time.Weekday, short bool) string {
	name := dayNames[d]
	if short {
		return NewTranslation(fmt.Sprintf("const_day_%d_short", d), name[:3], "").In(t, lang)
	}
	return NewTranslation(fmt.Sprintf("const_day_%d_long", d), name, "").In(t, lang)
}

func monthName(lang string, t *Translator, m time.Month, short bool) string {
	name := m.String()
	if short {
		return NewTranslation(fmt.Sprintf("const_month_%d_short", m), name[:3], "").In(t, lang)
	}
	return NewTranslation(fmt.Sprintf("const_month_%d_long", m), name, "").In(t, lang)
}

// StrfTime formats tm using strftime directives with day names, month names
// and the %c, %x and %X formats taken from the translations of lang:
//
//	const_datetimeformat, const_dateformat, const_timeformat
//	const_day_{0..6}_short, const_day_{0..6}_long       (0 is Sunday)
//	const_month_{1..12}_short, const_month_{1..12}_long
//
// Supported directives: %a %A %b %B %c %d %e %H %I %j %m %M %p %S %w %x %X
// %y %Y %z %Z %%. Unknown directives are copied unchanged.
func (t *Translator) StrfTime(lang string, tm time.Time, format string) string {
	var b strings.Builder
	t.strftime(&b, lang, tm, format, true)
	return b.String()
}

func (t *Translator) strftime(b *strings.Builder, lang string, tm time.Time, format string, nested bool) {
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			b.WriteByte(c)
			continue
		}
		i++
		switch d := format[i]; d {
		case 'a':
			b.WriteString(dayName(lang, t, tm.Weekday(), true))
		case 'A':
			b.WriteString(dayName(lang, t, tm.Weekday(), false))
		case 'b':
			b.WriteString(monthName(lang, t, tm.Month(), true))
		case 'B':
			b.WriteString(monthName(lang, t, tm.Month(), false))
		case 'c', 'x', 'X':
			tr := localizedDateTime
			if d == 'x' {
				tr = localizedDate
			} else if d == 'X' {
				tr = localizedTime
			}
			if nested {
				t.strftime(b, lang, tm, tr.In(t, lang), false)
			}
		case 'd':
			fmt.Fprintf(b, "%02d", tm.Day())
		case 'e':
			fmt.Fprintf(b, "%2d", tm.Day())
		case 'H':
			fmt.Fprintf(b, "%02d", tm.Hour())
		case 'I':
			h := tm.Hour() % 12
			if h == 0 {
				h = 12
			}
			fmt.Fprintf(b, "%02d", h)
		case 'j':
			fmt.Fprintf(b, "%03d", tm.YearDay())
		case 'm':
			fmt.Fprintf(b, "%02d", int(tm.Month()))
		case 'M':
			fmt.Fprintf(b, "%02d", tm.Minute())
		case 'p':
			if tm.Hour() < 12 {
				b.WriteString("AM")
			} else {
				b.WriteString("PM")
			}
		case 'S':
			fmt.Fprintf(b, "%02d", tm.Second())
		case 'w':
			fmt.Fprintf(b, "%d", int(tm.Weekday()))
		case 'y':
			fmt.Fprintf(b, "%02d", tm.Year()%100)
		case 'Y':
			fmt.Fprintf(b, "%d", tm.Year())
		case 'z':
			b.WriteString(tm.Format("-0700"))
		case 'Z':
			b.WriteString(tm.Format("MST"))
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteByte(d)
		}
	}
}
