package entities

// OnboardingRole is who is filling in the onboarding flow. It is a
// different vocabulary from UserRole.
type OnboardingRole string

const (
	OnboardingRoleSelf    OnboardingRole = "self"
	OnboardingRoleParent  OnboardingRole = "parent"
	OnboardingRoleFriend  OnboardingRole = "friend"
	OnboardingRolePlanner OnboardingRole = "planner"
	OnboardingRoleOther   OnboardingRole = "other"
)

type CeremonyType string

const (
	CeremonySecular    CeremonyType = "secular"
	CeremonyReligious  CeremonyType = "religious"
	CeremonyInterfaith CeremonyType = "interfaith"
	CeremonyCultural   CeremonyType = "cultural"
	CeremonySpiritual  CeremonyType = "spiritual"
)

// OnboardingData is collected once during onboarding and embedded in the
// Wedding when onboarding completes.
type OnboardingData struct {
	Role                  OnboardingRole         `json:"role" binding:"omitempty,oneof=self parent friend planner other"`
	WeddingStyle          string                 `json:"weddingStyle"`
	TopPriority           []string               `json:"topPriority"` // ranked, most important first
	EstimatedBudget       *float64               `json:"estimatedBudget,omitempty" binding:"omitempty,gte=0"`
	GuestCount            *int                   `json:"guestCount,omitempty" binding:"omitempty,gte=0"`
	Goals                 string                 `json:"goals"`
	PreferredColorTheme   string                 `json:"preferredColorTheme,omitempty"`
	WeddingCity           string                 `json:"weddingCity,omitempty"`
	WeddingState          string                 `json:"weddingState,omitempty"`
	WeddingCountry        string                 `json:"weddingCountry,omitempty"`
	IsReligious           *bool                  `json:"isReligious,omitempty"`
	Religions             []string               `json:"religions,omitempty"`
	CeremonyType          CeremonyType           `json:"ceremonyType,omitempty" binding:"omitempty,oneof=secular religious interfaith cultural spiritual"`
	InterfaithPreferences []InterfaithPreference `json:"interfaithPreferences,omitempty" binding:"omitempty,dive"`
	CeremonyDetails       *CeremonyDetails       `json:"ceremonyDetails,omitempty"`
	WantsBachelorParty    bool                   `json:"wantsBachelorParty"`
}

// InterfaithPreference lists the rituals to include for one religion.
type InterfaithPreference struct {
	Religion         string   `json:"religion" binding:"required"`
	RitualsToInclude []string `json:"ritualsToInclude"`
}

type CeremonyDetails struct {
	OfficiantType      string   `json:"officiantType,omitempty"`
	SpecificRituals    []string `json:"specificRituals,omitempty"`
	CulturalTraditions []string `json:"culturalTraditions,omitempty"`
}
