package git

// Step tables for the operations whose stderr we stream. Weights are
// relative; NewStepProgressParser rescales them. The titles must match the
// phase names git prints verbatim.
var (
	CloneProgressSteps = []ProgressStep{
		{Title: "remote: Compressing objects", Weight: 0.1},
		{Title: "Receiving objects", Weight: 0.6},
		{Title: "Resolving deltas", Weight: 0.1},
		{Title: "Checking out files", Weight: 0.2},
	}

	FetchProgressSteps = []ProgressStep{
		{Title: "remote: Compressing objects", Weight: 0.1},
		{Title: "Receiving objects", Weight: 0.7},
		{Title: "Resolving deltas", Weight: 0.2},
	}

	PullProgressSteps = []ProgressStep{
		{Title: "remote: Compressing objects", Weight: 0.1},
		{Title: "Receiving objects", Weight: 0.6},
		{Title: "Resolving deltas", Weight: 0.1},
		{Title: "Checking out files", Weight: 0.2},
	}

	PushProgressSteps = []ProgressStep{
		{Title: "Compressing objects", Weight: 0.25},
		{Title: "Writing objects", Weight: 0.75},
	}

	CheckoutProgressSteps = []ProgressStep{
		{Title: "Checking out files", Weight: 1},
	}

	RevertProgressSteps = []ProgressStep{
		{Title: "Reverting commit", Weight: 1},
	}
)
