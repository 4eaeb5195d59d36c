package parts

// FlowControlPrefix is the reserved tag-name prefix interpreted by the
// template engine rather than rendered as a real element.
const FlowControlPrefix = "lu:"

// PortalTag escapes flow-control classification: it renders its children
// elsewhere in the document and behaves like a normal start tag.
const PortalTag = "lu:portal"

// SharedModificationTag accepts arbitrary pass-through attributes the same
// way component tags do.
const SharedModificationTag = "template"

// FlowControlTags lists every recognized flow-control tag name.
var FlowControlTags = map[string]bool{
	"lu:await":   true,
	"lu:case":    true,
	"lu:catch":   true,
	"lu:default": true,
	"lu:else":    true,
	"lu:elseif":  true,
	"lu:for":     true,
	"lu:if":      true,
	"lu:keyed":   true,
	"lu:switch":  true,
	"lu:then":    true,
}

// FlowControlPredecessors maps chained flow-control tags to the sibling tags
// allowed immediately before them. Sibling order in the tree is insertion
// order, which is what makes this check possible.
var FlowControlPredecessors = map[string][]string{
	"lu:elseif": {"lu:if", "lu:elseif"},
	"lu:else":   {"lu:if", "lu:elseif"},
	"lu:then":   {"lu:await"},
	"lu:catch":  {"lu:await", "lu:then"},
}

// FlowControlParents maps flow-control tags that must be direct children of
// a specific flow-control parent.
var FlowControlParents = map[string]string{
	"lu:case":    "lu:switch",
	"lu:default": "lu:switch",
}

// KnownBindings lists the engine-provided binding names usable with the ':'
// prefix.
var KnownBindings = map[string]bool{
	"class":      true,
	"disable":    true,
	"enable":     true,
	"hide":       true,
	"html":       true,
	"ref":        true,
	"show":       true,
	"slot":       true,
	"src":        true,
	"style":      true,
	"transition": true,
}

// GlobalEventModifiers apply to every event binding.
var GlobalEventModifiers = map[string]bool{
	"capture": true,
	"once":    true,
	"passive": true,
	"prevent": true,
	"self":    true,
	"stop":    true,
}

// KeyboardEventKeys are modifier filters valid on keyboard events.
var KeyboardEventKeys = map[string]bool{
	"backspace": true,
	"delete":    true,
	"down":      true,
	"enter":     true,
	"escape":    true,
	"left":      true,
	"right":     true,
	"space":     true,
	"tab":       true,
	"up":        true,
}

// MouseEventButtons are modifier filters valid on mouse events.
var MouseEventButtons = map[string]bool{
	"auxiliary": true,
	"left":      true,
	"main":      true,
	"middle":    true,
	"right":     true,
	"secondary": true,
}

// KeyboardEvents and MouseEvents name the events the corresponding filter
// tables apply to.
var KeyboardEvents = map[string]bool{
	"keydown":  true,
	"keypress": true,
	"keyup":    true,
}

var MouseEvents = map[string]bool{
	"click":     true,
	"dblclick":  true,
	"mousedown": true,
	"mouseup":   true,
}
