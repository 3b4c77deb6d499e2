package turn

// ActionKind is one of the templated actions the UI offers. Every kind
// reduces to a plain description string at the engine boundary; the
// catalogue is a UI affordance, not part of the protocol.
type ActionKind string

const (
	ActionBuild    ActionKind = "build"
	ActionFarm     ActionKind = "farm"
	ActionRecruit  ActionKind = "recruit"
	ActionTax      ActionKind = "tax"
	ActionExplore  ActionKind = "explore"
	ActionDiplo    ActionKind = "diplomacy"
	ActionFestival ActionKind = "festival"
	ActionInvest   ActionKind = "invest"
	ActionCustom   ActionKind = "custom"
)

var actionDescriptions = map[ActionKind]string{
	ActionBuild:    "Commission new construction to expand the kingdom",
	ActionFarm:     "Direct the people to work the fields and grow food",
	ActionRecruit:  "Recruit soldiers from the available manpower",
	ActionTax:      "Collect taxes from the populace",
	ActionExplore:  "Send scouts to explore the surrounding lands",
	ActionDiplo:    "Send envoys to negotiate with a neighboring power",
	ActionFestival: "Hold a festival to lift the people's spirits",
	ActionInvest:   "Invest treasury funds into the economy",
}

// Describe returns the action description for a templated kind, or the
// custom text for ActionCustom. Unknown kinds fall back to the raw text.
func Describe(kind ActionKind, custom string) string {
	if kind == ActionCustom {
		return custom
	}
	if desc, ok := actionDescriptions[kind]; ok {
		return desc
	}
	return custom
}

// Catalogue lists the templated action kinds in display order.
func Catalogue() []ActionKind {
	return []ActionKind{
		ActionBuild, ActionFarm, ActionRecruit, ActionTax,
		ActionExplore, ActionDiplo, ActionFestival, ActionInvest,
	}
}
