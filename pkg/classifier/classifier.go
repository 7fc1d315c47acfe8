// Package classifier maps generation failures to a user-facing category,
// message and list of suggested refinements.
package classifier

import (
	"regexp"
	"strings"
)

// Category is the user-facing failure class, in priority order.
type Category string

const (
	CategoryAILimitation Category = "ai_limitation"
	CategoryParsing      Category = "parsing_error"
	CategoryNetwork      Category = "network_error"
	CategoryGeneric      Category = "generic"
)

const (
	aiLimitationMessage = "The AI encountered a complex request and couldn't generate a valid workflow. " +
		"Please try simplifying your description or breaking it down into smaller steps. " +
		"For example, focus on one specific automation at a time."
	parsingMessage = "The AI generated an invalid workflow format. Please try rephrasing your request " +
		"with more specific details about the services and actions you want to automate."
	networkMessage = "There was a connection issue while generating your workflow. " +
		"Please check your internet connection and try again."
	genericMessage = "We encountered an issue generating your workflow. Please try rephrasing your request " +
		"or provide more specific details about your automation needs."
)

var aiLimitationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)I cannot fully generate`),
	regexp.MustCompile(`(?i)My current capabilities do not allow`),
	regexp.MustCompile(`(?i)I'm unable to create`),
	regexp.MustCompile(`(?i)This request is too complex`),
	regexp.MustCompile(`(?i)I cannot provide`),
	regexp.MustCompile(`(?i)I'm not able to generate`),
	regexp.MustCompile(`(?i)This exceeds my capabilities`),
	regexp.MustCompile(`(?i)I cannot complete this request`),
	regexp.MustCompile(`(?i)I'm unable to process`),
	regexp.MustCompile(`(?i)This is beyond my current abilities`),
}

// Matched against the lower-cased error text.
var (
	parsingSignatures = []string{"json", "parse", "invalid workflow structure", "syntaxerror"}
	networkSignatures = []string{"fetch", "network", "timeout", "failed to generate workflow"}
)

// Analysis is the classification of one failure. The three flags are
// evaluated independently; Category and UserFriendlyMessage follow the
// priority AI limitation, parsing, network, generic.
type Analysis struct {
	Category            Category `json:"category"`
	IsAILimitation      bool     `json:"isAILimitation"`
	IsParsingError      bool     `json:"isParsingError"`
	IsNetworkError      bool     `json:"isNetworkError"`
	UserFriendlyMessage string   `json:"userFriendlyMessage"`
	TechnicalError      string   `json:"technicalError,omitempty"`
}

// Analyze classifies err together with the raw model response, which may be
// empty. A nil err is treated as an empty message.
func Analyze(err error, rawResponse string) Analysis {
	message := ""
	if err != nil {
		message = err.Error()
	}

	lowered := strings.ToLower(message)

	analysis := Analysis{
		IsAILimitation: matchesAny(aiLimitationPatterns, rawResponse) || matchesAny(aiLimitationPatterns, message),
		IsParsingError: containsAny(lowered, parsingSignatures),
		IsNetworkError: containsAny(lowered, networkSignatures),
		TechnicalError: message,
	}

	switch {
	case analysis.IsAILimitation:
		analysis.Category = CategoryAILimitation
		analysis.UserFriendlyMessage = aiLimitationMessage
	case analysis.IsParsingError:
		analysis.Category = CategoryParsing
		analysis.UserFriendlyMessage = parsingMessage
	case analysis.IsNetworkError:
		analysis.Category = CategoryNetwork
		analysis.UserFriendlyMessage = networkMessage
	default:
		analysis.Category = CategoryGeneric
		analysis.UserFriendlyMessage = genericMessage
	}

	return analysis
}

// Suggestions returns refinement hints for the analysis. Network and generic
// failures share one list.
func Suggestions(analysis Analysis) []string {
	switch {
	case analysis.IsAILimitation:
		return []string{
			"Break down complex automations into smaller, individual workflows",
			"Be more specific about the services you want to connect (e.g., Gmail, Slack, Google Sheets)",
			"Describe the exact trigger and action you want (e.g., 'when I receive an email' → 'send a Slack message')",
			"Try using one of the example prompts from the sidebar",
		}
	case analysis.IsParsingError:
		return []string{
			"Use simpler language to describe your automation",
			"Mention specific service names (Gmail, Slack, Airtable, etc.)",
			"Describe a single workflow instead of multiple automations",
			"Check out the templates for inspiration",
		}
	default:
		return []string{
			"Try rephrasing your request with different words",
			"Be more specific about what triggers the automation",
			"Mention the exact services you want to connect",
			"Start with a simpler automation and build up complexity",
		}
	}
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	if text == "" {
		return false
	}

	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}

	return false
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}

	return false
}
