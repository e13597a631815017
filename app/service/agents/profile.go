package agents

type Type string

const (
	General  Type = "general"
	Clinical Type = "clinical"
	Food     Type = "food"
)

// Category is an ordered group of vocabulary keywords. Category order and
// keyword order inside a category determine topic extraction order.
type Category struct {
	Name     string
	Keywords []string
}

// InsightRule maps query substrings to a canned insight clause. Rules are
// evaluated in order, first match wins.
type InsightRule struct {
	Match   []string
	Insight string
}

type Profile struct {
	Type        Type
	DisplayName string
	Description string

	Vocabulary []Category

	// Templates may reference {topic} and {insight}
	Templates []string

	Greeting string
	Help     string
	// SwitchTemplate may reference {topic}
	SwitchTemplate string

	Insights       []InsightRule
	DefaultInsight string
}

func defaultProfiles() []*Profile {
	return []*Profile{
		{
			Type:        General,
			DisplayName: "General",
			Description: "Broad assistant for data exploration and routing to specialized agents",
			Vocabulary: []Category{
				{Name: "economy", Keywords: []string{"gdp", "growth", "inflation", "trade", "economy"}},
				{Name: "environment", Keywords: []string{"co2", "emissions", "climate", "energy"}},
				{Name: "data", Keywords: []string{"data", "api", "statistics", "indicator", "dataset"}},
			},
			Templates: []string{
				"Here's what I can tell you about {topic}: {insight}.",
				"On {topic}, {insight}.",
				"I looked into {topic} for you. In short, {insight}.",
				"Regarding {topic}, {insight}.",
				"There's quite a bit of material on {topic}: {insight}.",
			},
			Greeting: "Hello! I'm your general assistant. I can help you explore data sources or " +
				"connect you with our specialized agents. How can I assist you today?",
			Help: "I'm your general assistant, able to help with a wide range of queries. For specialized " +
				"information, I can route you to the Clinical agent for health-related questions or the " +
				"Food Security agent for agriculture and nutrition topics. What would you like to know?",
			SwitchTemplate: "I'll take this one as the general assistant. Happy to explore {topic} with you.",
			Insights: []InsightRule{
				{
					Match: []string{"data", "api"},
					Insight: "economic indicators like GDP, environmental series such as CO2 emissions, " +
						"and agricultural land usage statistics are all available",
				},
				{
					Match: []string{"agent", "switch"},
					Insight: "specialized agents cover clinical research and food security alongside " +
						"this general assistant",
				},
			},
			DefaultInsight: "I can help you navigate various data sources or connect you with a specialized agent",
		},
		{
			Type:        Clinical,
			DisplayName: "Clinical",
			Description: "Health and medical research assistant",
			Vocabulary: []Category{
				{Name: "conditions", Keywords: []string{"covid", "coronavirus", "diabetes", "cancer", "malaria", "influenza"}},
				{Name: "care", Keywords: []string{"treatment", "therapy", "vaccine", "doctor", "hospital", "medication"}},
				{Name: "research", Keywords: []string{"trial", "study", "diagnosis", "symptom"}},
			},
			Templates: []string{
				"Based on our clinical research database, {topic} is well studied: {insight}.",
				"From a medical standpoint, {topic} deserves careful attention. Our records indicate {insight}.",
				"Looking into {topic}, the clinical literature suggests {insight}.",
				"Our health data on {topic} paints a clear picture: {insight}.",
				"Regarding {topic}, current medical research indicates {insight}.",
			},
			Greeting: "Hello! You're talking to the Clinical agent. Ask me about medical conditions, " +
				"treatments or health research.",
			Help: "I can provide evidence-based information on medical conditions, treatments and health " +
				"research. This should not replace professional medical advice. What specific medical " +
				"topic would you like me to analyze?",
			SwitchTemplate: "Your question looks medical, so I've taken over from here. Let's dig into " +
				"{topic} from a clinical angle.",
			Insights: []InsightRule{
				{
					Match: []string{"covid", "coronavirus"},
					Insight: "COVID-19 is caused by the SARS-CoV-2 virus, and vaccination remains one of " +
						"the most effective preventive measures",
				},
				{
					Match: []string{"diabetes"},
					Insight: "diabetes is a chronic condition affecting how the body processes blood " +
						"sugar, with two main types depending on insulin production and response",
				},
				{
					Match: []string{"treatment", "therapy"},
					Insight: "treatment approaches should always be reviewed with qualified healthcare " +
						"professionals rather than taken as direct advice",
				},
			},
			DefaultInsight: "evidence-based information is available on conditions, treatments and ongoing health research",
		},
		{
			Type:        Food,
			DisplayName: "Food Security",
			Description: "Agriculture, nutrition and global food supply assistant",
			Vocabulary: []Category{
				{Name: "agriculture", Keywords: []string{"agriculture", "crop", "farm", "harvest", "irrigation"}},
				{Name: "nutrition", Keywords: []string{"nutrition", "diet", "protein", "calorie"}},
				{Name: "security", Keywords: []string{"hunger", "famine", "supply", "production", "climate"}},
			},
			Templates: []string{
				"Our food security database has extensive coverage of {topic}: {insight}.",
				"On the subject of {topic}, agricultural data shows {insight}.",
				"Looking at {topic} through a food security lens, {insight}.",
				"Global figures on {topic} suggest {insight}.",
				"Regarding {topic}, our agricultural records indicate {insight}.",
			},
			Greeting: "Hello! You're talking to the Food Security agent. Ask me about agriculture, " +
				"nutrition or global food supply.",
			Help: "I can provide information on global agriculture trends, nutrition, sustainable farming " +
				"practices and food distribution systems. What specific aspect of food security would " +
				"you like to explore?",
			SwitchTemplate: "This one falls under food security, so I'm picking it up. Let's look at " +
				"{topic} from an agricultural angle.",
			Insights: []InsightRule{
				{
					Match: []string{"climate", "warming"},
					Insight: "rising temperatures and shifting precipitation patterns are disrupting " +
						"traditional growing seasons, making adaptive techniques like drought-resistant crops increasingly important",
				},
				{
					Match: []string{"nutrition", "diet"},
					Insight: "balanced diets with adequate proteins, carbohydrates, fats and " +
						"micronutrients remain out of reach for roughly 2 billion people",
				},
				{
					Match: []string{"farm", "agriculture"},
					Insight: "practices like crop rotation, minimal tillage and integrated pest " +
						"management maintain soil health while raising productivity",
				},
			},
			DefaultInsight: "global trends span agriculture, nutrition, sustainable farming and food distribution systems",
		},
	}
}
