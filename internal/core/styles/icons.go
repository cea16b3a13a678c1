package styles

var (
	IconHandle    = "⋮⋮"
	IconChecked   = "[x]"
	IconUnchecked = "[ ]"
	IconLocal     = "⌂"
	IconCenter    = "│"
	IconCopied    = "✓"
	IconRemove    = "✕"
)
