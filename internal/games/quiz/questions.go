package quiz

// Question is one multiple-choice question.
type Question struct {
	Text    string
	Options []string
	Correct int
}

// Questions is the fixed question set, asked in order.
var Questions = []Question{
	{
		Text:    "What is the name of Han Solo's ship?",
		Options: []string{"X-Wing", "TIE Fighter", "Millennium Falcon", "Star Destroyer"},
		Correct: 2,
	},
	{
		Text:    "Who is Luke Skywalker's father?",
		Options: []string{"Obi-Wan Kenobi", "Yoda", "Darth Vader", "Mace Windu"},
		Correct: 2,
	},
	{
		Text:    "What is the weapon of a Jedi Knight?",
		Options: []string{"Blaster", "Lightsaber", "Bowcaster", "Vibroblade"},
		Correct: 1,
	},
	{
		Text:    "What is the name of the Wookiee in Star Wars?",
		Options: []string{"Chewbacca", "Ewok", "Jabba", "Bossk"},
		Correct: 0,
	},
	{
		Text:    "Who trained Luke Skywalker in 'The Empire Strikes Back'?",
		Options: []string{"Obi-Wan Kenobi", "Yoda", "Qui-Gon Jinn", "Mace Windu"},
		Correct: 1,
	},
}
