package engagement

// Category is one topic in the fixed two-level conversation taxonomy used
// for weighted question selection.
type Category struct {
	Name          string
	Subcategories []string
}

// Categories is ordered so that weighted selection is deterministic under
// a fixed random seed.
var Categories = []Category{
	{"Health and Medicine", []string{
		"Medication intake",
		"Doctor appointment reminders",
		"Symptoms or discomfort",
		"Chronic illness check-in",
	}},
	{"Emotional State and Well-being", []string{
		"Mood tracking",
		"Stress or anxiety check",
		"Loneliness check",
		"Positive reinforcement",
	}},
	{"Companion and Social Interaction", []string{
		"Family interactions",
		"Friendship talk",
		"Daily social activity",
		"Memory sharing with loved ones",
	}},
	{"Reminders Questions", []string{
		"Medication reminders",
		"Hydration check",
		"Meal time check",
		"Appointment reminders",
	}},
	{"Practical Support and Request", []string{
		"Help with devices",
		"Need groceries or essentials",
		"Household tasks",
		"Emergency check",
	}},
	{"Health Motion", []string{
		"Exercise tracking",
		"Walking reminders",
		"Mobility check",
		"Stretching or movement prompts",
	}},
	{"Best Caring", []string{
		"Comfort level",
		"Care quality feedback",
		"Suggestions for better care",
		"Is anything bothering you?",
	}},
	{"Current Time Based Questions (e.g., morning, evening, night)", []string{
		"Morning greetings and check-in",
		"Evening mood and activities",
		"Night sleep preparation",
		"Time-specific medicine check",
	}},
	{"Memory and Life Reflection", []string{
		"Childhood memories",
		"Career achievements",
		"Important life lessons",
		"Family stories",
	}},
	{"Daily Routine Check-ins", []string{
		"Wake-up time",
		"Meals taken",
		"Activities done",
		"Nap or rest",
	}},
	{"Nutrition and Meal-related", []string{
		"Breakfast/lunch/dinner check",
		"Diet preferences",
		"Did you enjoy your meal?",
		"Water intake",
	}},
	{"Sleep and Rest", []string{
		"Sleep quality",
		"Nap check",
		"Bedtime routine",
		"Any sleep difficulties",
	}},
	{"Mental Stimulation and Cognitive Exercises", []string{
		"Memory games",
		"Trivia or puzzles",
		"Storytelling prompts",
		"What day is it today?",
	}},
	{"Safety and Security Concerns", []string{
		"Door locked check",
		"Feeling safe?",
		"Stranger alert",
		"Emergency preparedness",
	}},
	{"Festivals and Cultural Engagement", []string{
		"Festival greetings",
		"Special traditions",
		"Religious practices",
		"Celebration plans",
	}},
	{"Weather-related Questions", []string{
		"Weather comfort check",
		"Dress suggestions",
		"Outdoor plan suitability",
		"Cold/heat-related discomfort",
	}},
	{"Motivational and Encouraging Conversations", []string{
		"Words of encouragement",
		"Proud of you messages",
		"Goal setting",
		"Daily affirmations",
	}},
	{"Celebration and Special Days", []string{
		"Birthday wishes",
		"Anniversary reminders",
		"Milestones celebration",
		"Family event questions",
	}},
	{"Spiritual and Faith-based Reflections", []string{
		"Prayer time",
		"Faith talk",
		"Spiritual comfort check",
		"Religious holiday wishes",
	}},
	{"Entertainment and Leisure Activities", []string{
		"TV/music preference",
		"Movie recommendations",
		"Hobby discussion",
		"Crafts or games ideas",
	}},
	{"Technology Help or Guidance", []string{
		"Phone help",
		"Video call assistance",
		"Settings guidance",
		"Online safety tips",
	}},
	{"Personal Hygiene and Grooming", []string{
		"Bathing check",
		"Brushing teeth",
		"Hair grooming",
		"Clothing comfort",
	}},
	{"Pain or Discomfort Tracking", []string{
		"Pain scale rating",
		"Body part check",
		"Relief methods",
		"Medical follow-up needs",
	}},
	{"Exercise and Physical Activity Encouragement", []string{
		"Stretch prompt",
		"Breathing exercises",
		"Balance check",
		"Short walk suggestion",
	}},
	{"Custom Questions based on User Preferences or Habits", []string{
		"Favorite routine check",
		"User-defined goals",
		"Unique memory triggers",
		"Personal hobbies",
	}},
}

// CategoryNames returns the taxonomy's category labels in fixed order.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}

// SubcategoriesOf returns the subcategory labels for a category, or nil
// for an unknown category.
func SubcategoriesOf(name string) []string {
	for _, c := range Categories {
		if c.Name == name {
			return c.Subcategories
		}
	}
	return nil
}
