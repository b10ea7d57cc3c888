package card

// Card is a normalized trading card
type Card struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	CardType       string   `json:"cardType" yaml:"cardType"`
	EvolutionStage string   `json:"evolutionStage" yaml:"evolutionStage"`
	Pack           string   `json:"pack" yaml:"pack"`
	HP             int      `json:"hp" yaml:"hp"`
	Type           string   `json:"type" yaml:"type"`
	Weakness       string   `json:"weakness" yaml:"weakness"`
	RetreatCost    int      `json:"retreatCost" yaml:"retreatCost"`
	AbilityName    string   `json:"abilityName" yaml:"abilityName"`
	AbilityEffect  string   `json:"abilityEffect" yaml:"abilityEffect"`
	Moves          []Move   `json:"moves" yaml:"moves"`
	MaxDamage      int      `json:"maxDamage" yaml:"maxDamage"`
	MaxEnergyCost  int      `json:"maxEnergyCost" yaml:"maxEnergyCost"`
	Tags           []string `json:"tags" yaml:"tags"`
	ImageKey       string   `json:"imageKey" yaml:"imageKey"`
}

// Move is one attack slot of a card
type Move struct {
	Name   string `json:"name" yaml:"name"`
	Damage int    `json:"damage" yaml:"damage"`
	Effect string `json:"effect" yaml:"effect"`
}
