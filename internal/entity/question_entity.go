package entity

// Question ids are stable human-assigned strings ("q_intro_1" style) so the
// id-ascending candidate ordering is deterministic across stores.
type Question struct {
	Id         string
	Skill      string
	Difficulty int
	Type       string
	Prompt     string
	Weight     float64
	Meta       map[string]interface{}
}
