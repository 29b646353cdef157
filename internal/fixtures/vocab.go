package fixtures

// Vocabulary holds the word lists records are drawn from.
type Vocabulary struct {
	FirstNames    []string
	LastNames     []string
	Cities        []string
	EmailDomains  []string
	Categories    []string
	Adjectives    []string
	ProductNouns  []string
	PaymentModes  []string
	OrderStatuses []WeightedChoice[string]
}

// DefaultVocabulary returns the stock word lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		FirstNames: []string{
			"Olivia", "Noah", "Emma", "Liam", "Amelia", "Mason", "Sophia", "Ethan", "Ava", "Logan",
			"Mia", "Lucas", "Isabella", "Aiden", "Charlotte", "Jackson", "Harper", "Sebastian", "Evelyn",
			"Benjamin", "Abigail", "Elijah", "Emily", "James", "Scarlett", "Henry", "Madison", "Daniel",
			"Layla", "Matthew", "Aria", "Samuel", "Chloe", "David", "Mila", "Carter", "Ellie", "Wyatt",
			"Luna",
		},
		LastNames: []string{
			"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez",
			"Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor",
			"Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White", "Harris", "Sanchez",
			"Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King", "Wright",
			"Scott", "Torres", "Nguyen", "Hill", "Flores",
		},
		Cities: []string{
			"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio",
			"San Diego", "Dallas", "San Jose", "Austin", "Jacksonville", "San Francisco", "Columbus",
			"Fort Worth", "Indianapolis", "Charlotte", "Seattle", "Denver", "Washington",
		},
		EmailDomains: []string{"example.com", "mail.com", "shopper.io", "retailhub.net"},
		Categories: []string{
			"Electronics", "Home & Kitchen", "Sports & Outdoors", "Fashion", "Beauty & Personal Care",
			"Books", "Toys & Games", "Automotive", "Pet Supplies", "Office Supplies",
		},
		Adjectives: []string{
			"Advanced", "Compact", "Premium", "Eco", "Smart", "Wireless", "Portable", "Deluxe",
			"Classic", "Pro", "Ultra", "Lite", "Essential", "Signature", "Colorful",
		},
		ProductNouns: []string{
			"Headphones", "Blender", "Backpack", "Sneakers", "Watch", "Camera", "Vacuum", "Mixer",
			"Yoga Mat", "Helmet", "Desk Lamp", "Notebook", "Water Bottle", "Gaming Mouse", "Cookware Set",
			"Drone", "Sunglasses", "Bluetooth Speaker", "Smart Plug", "Fitness Tracker",
		},
		PaymentModes: []string{"Credit Card", "Debit Card", "PayPal", "Bank Transfer", "Gift Card", "Apple Pay"},
		OrderStatuses: []WeightedChoice[string]{
			{Value: "Pending", Weight: 10},
			{Value: "Processing", Weight: 15},
			{Value: "Shipped", Weight: 25},
			{Value: "Delivered", Weight: 30},
			{Value: "Cancelled", Weight: 10},
			{Value: "Returned", Weight: 10},
		},
	}
}

// validate reports the first empty word list.
func (v Vocabulary) validate() error {
	lists := []struct {
		name  string
		words []string
	}{
		{"first names", v.FirstNames},
		{"last names", v.LastNames},
		{"cities", v.Cities},
		{"email domains", v.EmailDomains},
		{"categories", v.Categories},
		{"adjectives", v.Adjectives},
		{"product nouns", v.ProductNouns},
		{"payment modes", v.PaymentModes},
	}
	for _, l := range lists {
		if len(l.words) == 0 {
			return &ConfigError{Field: l.name, Reason: "vocabulary is empty"}
		}
	}
	if len(v.OrderStatuses) == 0 {
		return &ConfigError{Field: "order statuses", Reason: "vocabulary is empty"}
	}
	return nil
}
