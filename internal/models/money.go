package models

import "fmt"

// FormatAmount renders a minor-unit amount as a two-decimal string, e.g.
// 12345 -> "123.45". Used in user-facing error messages and descriptions.
func FormatAmount(minorUnits int64) string {
	sign := ""
	if minorUnits < 0 {
		sign = "-"
		minorUnits = -minorUnits
	}
	return fmt.Sprintf("%s%d.%02d", sign, minorUnits/100, minorUnits%100)
}
