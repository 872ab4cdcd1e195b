package dialogs

const (
	msgGreeting = "How can I help you today?\nYou can check your account and previous transactions, make a transaction, or ask general questions!"
	msgRestart  = "What else can I do for you?"

	msgRecognizerNotConfigured = "NOTE: LUIS is not configured. To enable all capabilities, add `LuisAppId`, `LuisAPIKey` and `LuisAPIHostName` to the .env file."

	msgUnrecognizedIntent   = "Dispatch unrecognized intent: %s."
	msgNoAnswer             = "Sorry, could not find an answer in the Q and A system."
	msgTransactionNotFound  = "Sorry, could not find a transaction with ID %s in the system."
	msgUpsell               = "It appears you're making a lot of transactions. Check out our Golden accounts to benefit from premium transactions."
	msgAmountPrompt         = "Please enter an amount to send."
	msgAmountRangePrompt    = "Please enter an amount between %d and %d."
	msgAmountRetry          = "The value entered must be greater than %d and less than %d."
	msgConfirmTransaction   = "You are about to send an amount of %s. Kindly confirm."
	msgInsufficientFunds    = "Not enough funds in wallet"
	msgTransactionSent      = "Sending $%s. Remaining balance: %s"
	msgSurveyOffer          = "Would you like to take a survey?"
	msgRatingPrompt         = "How would you rate our services? (From %d to %d)"
	msgRatingRetry          = "The value entered must be between %d and %d."
	msgCommentPrompt        = "Please enter any comment you might have."
	msgSurveyThanks         = "Thank you for your participation! Message sentiment: %s"
	msgHelp                 = "Answer the question above to continue, or type \"cancel\" to stop."
	msgCancelling           = "Cancelling..."
	msgConfirmChoiceYes     = "Yes"
	msgConfirmChoiceNo      = "No"
	actionMakeTransaction   = "Make a transaction"
	actionViewTransactions  = "View transactions"
	actionViewAccount       = "View account"
	accountCardSubtitle     = "My account"
	accountCardBalance      = "Amount in account: %s"
	accountCardLoginTitle   = "Log In"
	transactionCardUser     = "User: %s"
	transactionCardHeader   = "Transactions:"
	transactionCardID       = "ID: %d"
	transactionCardAmount   = "Amount: $%s"
	accountCardImageName    = "bank-logo.svg"
	transactionCardIconName = "transaction.svg"
)
