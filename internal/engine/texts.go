package engine

import "github.com/Spok95/catalog-bot/internal/domain/catalog"

// Команды
const (
	CmdStart       = "start"
	CmdHelp        = "help"
	CmdProducts    = "products"
	CmdServices    = "services"
	CmdEducational = "educational"
	CmdInquiry     = "inquiry"
	CmdCancel      = "cancel"
	CmdSearch      = "search"
	CmdMine        = "my"
)

// Нижняя клавиатура
const (
	MenuProducts    = "📦 Products"
	MenuServices    = "🛠 Services"
	MenuEducational = "📚 Educational"
	MenuInquiry     = "💬 Inquiry"
	MenuMine        = "🗂 My inquiries"
)

const (
	textWelcome = "Welcome! Browse the catalog with the buttons below or type what you are looking for."
	textHelp    = "Commands:\n" +
		"/products — product catalog\n" +
		"/services — services\n" +
		"/educational — articles\n" +
		"/search <text> — search the catalog\n" +
		"/inquiry — send a general inquiry\n" +
		"/my — my inquiries\n" +
		"/cancel — cancel the current step"
	textUnknownCommand = "Unknown command. Type /help"
	textUseMenu        = "Please use the menu buttons."
	textUnavailable    = "The service is temporarily unavailable, please try again later."
	textGone           = "This section is no longer available."

	textPickCategory = "Choose a category:"
	textPickItem     = "Choose an item:"
	textEmpty        = "Nothing here yet."
	textNoMedia      = "🖼 No image yet."

	textBack        = "⬅️ Back"
	textBackToList  = "⬅️ Back to list"
	textRequest     = "💬 Request price"
	textMoreMedia   = "🖼 More media (%d)"
	textConfirm     = "✅ Confirm"
	textCancel      = "✖️ Cancel"
	textPrice       = "Price: %s"
	textPriceAsk    = "Price: on request"
	textBrand       = "Brand: %s"
	textInStock     = "In stock"
	textOutOfStock  = "Out of stock"
	textOutOfStockS = " · out of stock"

	textSearchUsage   = "Type what you are looking for, e.g. /search oscilloscope"
	textSearchResults = "Search results for «%s»:"
	textNothingFound  = "Nothing found."

	textAskName        = "Please enter your name:"
	textAskPhone       = "Please enter your phone number:"
	textAskDescription = "Describe your request:"
	textInquiryFor     = "Price request for: %s"
	textGeneralInquiry = "General inquiry"
	textEmptyInput     = "This field cannot be empty."
	textTooLong        = "The text is too long (max %d characters)."
	textBadPhone       = "The phone number format is not valid."
	textSummary        = "Please check your request:\n\nItem: %s\nName: %s\nPhone: %s\nDescription: %s"
	textUseButtons     = "Please confirm or cancel the request with the buttons."
	textCommitFailed   = "Could not save the request. Please press «Confirm» again."
	textThanks         = "Thank you! Your request has been sent, we will contact you soon."
	textNothingConfirm = "There is nothing to confirm."
	textCancelled      = "Cancelled."
	textNothingCancel  = "Nothing to cancel."

	textMineEmpty = "You have no inquiries yet."
	textMineTitle = "Your recent inquiries:"
)

func sectionTitle(t catalog.Type) string {
	switch t {
	case catalog.TypeService:
		return MenuServices
	case catalog.TypeEducational:
		return MenuEducational
	}
	return MenuProducts
}

func typeIcon(t catalog.Type) string {
	switch t {
	case catalog.TypeService:
		return "🛠"
	case catalog.TypeEducational:
		return "📚"
	}
	return "📦"
}
