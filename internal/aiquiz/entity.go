package aiquiz

type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Points        int      `json:"points"`
	Explanation   string   `json:"explanation,omitempty"`
}

type GenerateRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
	Material   string `json:"material,omitempty"`
}
