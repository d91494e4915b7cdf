package notifications

import (
	"fmt"
	"math"
	"strings"
)

// HealthReminder текст напоминания о повторной записи
func HealthReminder(firstName, vehicleName string, protectionPercent int, siteURL string) string {
	if strings.TrimSpace(firstName) == "" {
		firstName = "there"
	}

	return fmt.Sprintf(
		"Hi %s! Your %s's protection is at %d%%. Book your next service to maintain optimal protection: %s/book",
		firstName, vehicleName, protectionPercent, strings.TrimRight(siteURL, "/"),
	)
}

// ProtectionPercent доля оставшегося окна защиты в процентах, округление half-up
func ProtectionPercent(daysSinceService, optimalDays int) int {
	if optimalDays <= 0 {
		return 0
	}

	daysLeft := optimalDays - daysSinceService
	if daysLeft < 0 {
		daysLeft = 0
	}

	return int(math.Floor(float64(daysLeft)/float64(optimalDays)*100 + 0.5))
}
