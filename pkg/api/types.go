package api

// ChatRequest is the payload sent to the completion service.
type ChatRequest struct {
	Message string `json:"message"`
	PageDOM string `json:"pageDOM"`
	APIKey  string `json:"apiKey"`
	Intent  string `json:"intent"` // "locate" | "instruct"
}

// NavigationCard points the user at a single in-app destination.
// A parse only counts as a card when all three fields are non-empty.
type NavigationCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Step is one instruction in a step-by-step guide.
type Step struct {
	StepNumber         int    `json:"step_number"`
	Instruction        string `json:"instruction"`
	ElementDescription string `json:"element_description,omitempty"`
	Location           string `json:"location"`
}

// StepGuide is an ordered set of instructions for completing a task.
// Step numbers are trusted as delivered, not re-derived.
type StepGuide struct {
	Task            string `json:"task"`
	Steps           []Step `json:"steps"`
	DestinationPage string `json:"destination_page,omitempty"`
}

// ChatResponse is the completion service reply. Card and guide presence
// is authoritative over the free-text reply.
type ChatResponse struct {
	Success bool            `json:"success"`
	Reply   string          `json:"reply,omitempty"`
	Card    *NavigationCard `json:"card,omitempty"`
	Guide   *StepGuide      `json:"guide,omitempty"`
}

// APIError is the error envelope returned on failure responses.
type APIError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
