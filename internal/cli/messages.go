package cli

// card tasks
const (
	addCardsWhichDeck    = "You've chosen to add one or more cards. Which deck would you like to add the card(s) to?"
	delCardsWhichDeck    = "You've chosen to delete one or more cards. From which deck would you like to delete the card(s)?"
	delCardsWhichCard    = "Choose the card(s) you wish to delete (you can filter cards by typing)"
	editCardWhichDeck    = "You've chosen to edit a card's details. In which deck is the card located?"
	editCardWhichCard    = "You've chosen to edit a card. Which card would you like to edit?"
	browseCardsWhichDeck = "Choose a deck to browse its cards."
	browseCardsWhichCard = "Choose a card to view its details."
	exportCardsWhichDeck = "You've chosen to export a deck of cards. Which deck would you like to export?"
	importCardsWhichDeck = "You've chosen to import one or more cards. To which deck would you like to import the card(s)?"
)

// deck tasks
const (
	delDeckWhichDeck  = "You've chosen to delete one or more decks. Which deck(s) do you wish to delete? (you can filter by typing)"
	editDeckWhichDeck = "You've chosen to edit a deck's details. Which deck would you like to edit?"
)

// study tasks
const (
	studyCardsWhichDeck = "You've chosen to study some cards. Which deck do you want to study with?"
	studyEmptyDeck      = "There are no cards in this deck scheduled for review. Would you like to study a different deck?"
	studyHowMany        = "Great choice! You have %d cards to review in this deck. How many cards do you want to study?"
	studyFlip           = "Press the <enter> key when you're ready to flip the card."
	studyScore          = "How quickly did you recall this card?"
)
