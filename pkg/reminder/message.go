package reminder

import (
	"fmt"
)

// AlertText is the human-readable content of a reminder event, derived
// deterministically from the subscription fields.
type AlertText struct {
	Summary     string
	Description string
}

// BuildAlertText builds the summary and description for a reminder event.
func BuildAlertText(serviceName string, planType PlanType, category string, cost float64) AlertText {
	planWord := "Subscription"
	planKind := "subscription"
	periodKind := "billing period"
	if planType == PlanTrial {
		planWord = "Trial"
		planKind = "free trial"
		periodKind = "trial period"
	}

	summary := fmt.Sprintf("Subscription Alert: %s %s Ending Soon", serviceName, planWord)

	description := fmt.Sprintf(
		"Your %s for %s ends tomorrow.\n"+
			"\n"+
			"Please review your subscription status and decide whether to cancel or continue your plan.\n"+
			"\n"+
			"Details:\n"+
			"• Service: %s\n"+
			"• Category: %s\n"+
			"• Monthly Cost: ₹%.2f\n"+
			"\n"+
			"Important: Take action before your %s ends to avoid any unexpected charges.\n"+
			"\n"+
			"You can manage your subscription settings at any time through your account dashboard.",
		planKind, serviceName, serviceName, category, cost, periodKind,
	)

	return AlertText{
		Summary:     summary,
		Description: description,
	}
}
