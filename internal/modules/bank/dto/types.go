package dto

type QuestionOutput struct {
	ID           string
	Category     string
	Difficulty   string
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  string
}

type CategoryOutput struct {
	Name  string
	Count int
}

type ValidateOutput struct {
	QuestionCount int
	Categories    int
	Hard          int
	Medium        int
	Easy          int
}

type FetchOutput struct {
	QuestionCount int
	Path          string
}
