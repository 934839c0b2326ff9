package buddy

const (
	MinGauge = 0
	MaxGauge = 100

	InitialHunger    = 80
	InitialEnergy    = 90
	InitialHappiness = 85

	DefaultFoodHungerGain = 10
	FeedHappinessGain     = 5
	PetHappinessGain      = 3
	PlayHappinessGain     = 10
	PlayEnergyCost        = 5
	SleepEnergyLevel      = 100

	TickHungerDecay    = 0.5
	TickEnergyDecay    = 0.3
	TickHappinessDecay = 0.2

	TickHungerFloor    = 0
	TickEnergyFloor    = 0
	TickHappinessFloor = 20

	StarsPerLevel = 50

	TiredEnergyBelow      = 20
	HungryHungerBelow     = 30
	SadHappinessBelow     = 40
	ExcitedHappinessAbove = 80

	DefaultOutfit = "default"
)

var FoodHungerGain = map[string]int{
	"apple":  15,
	"cookie": 10,
	"carrot": 12,
	"pizza":  20,
}

var BaselineActivities = []string{"letters", "numbers", "colors"}

var StarterFood = map[string]int{
	"apple":  3,
	"cookie": 2,
	"carrot": 5,
}

var StarterToys = []string{"ball"}

type LevelUnlock struct {
	Level int
	Kind  UnlockKind
	Name  string
}

// LevelUnlocks fire once, on the transition that crosses Level.
var LevelUnlocks = []LevelUnlock{
	{Level: 3, Kind: UnlockActivity, Name: "shapes"},
	{Level: 5, Kind: UnlockActivity, Name: "math"},
}

func FoodValue(foodID string) int {
	if v, ok := FoodHungerGain[foodID]; ok {
		return v
	}
	return DefaultFoodHungerGain
}

func LevelForStars(totalStars int) int {
	if totalStars < 0 {
		return 1
	}
	return totalStars/StarsPerLevel + 1
}

func StarsToNextLevel(totalStars int) int {
	next := LevelForStars(totalStars) * StarsPerLevel
	return next - totalStars
}
