package genre

// Genre is a slug-keyed label a title can carry any number of.
type Genre struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
