package wizard

// Step is one page of a wizard. Complete reports whether the document holds
// enough for the user to move past this step; a nil Complete always passes.
type Step struct {
	Title    string
	Fields   []string
	Complete func(Document) bool
}

// StepDescriptor is the read-only view of a step handed to clients.
type StepDescriptor struct {
	Index  int      `json:"index"`
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

func (s Step) complete(doc Document) bool {
	if s.Complete == nil {
		return true
	}
	return s.Complete(doc)
}

// Describe lists the steps in order.
func Describe(steps []Step) []StepDescriptor {
	out := make([]StepDescriptor, len(steps))
	for i, s := range steps {
		out[i] = StepDescriptor{
			Index:  i,
			Title:  s.Title,
			Fields: append([]string(nil), s.Fields...),
		}
	}
	return out
}

// Filled is a Complete predicate requiring every key to be populated in the
// same sense the completion scorer uses.
func Filled(keys ...string) func(Document) bool {
	return func(doc Document) bool {
		for _, k := range keys {
			if !Populated(doc[k]) {
				return false
			}
		}
		return true
	}
}

// Flow bundles everything that defines one kind of wizard.
type Flow struct {
	Name      string
	Steps     []Step
	Defaults  func() Document
	Checklist Checklist
}
