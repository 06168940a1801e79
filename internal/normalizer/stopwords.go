package normalizer

// Tokens that carry no merchant identity: places, currencies, calendar
// words, and the boilerplate banks wrap around every reference.
var (
	locationStopwords = []string{
		"singapore", "sg", "sgp", "sin", "spore", "malaysia", "my", "mys", "kuala", "lumpur", "kl",
		"johor", "bahru", "jb", "penang", "jurong", "tampines", "woodlands", "orchard", "changi",
		"bedok", "yishun", "sengkang", "punggol", "toa", "payoh", "ang", "mo", "kio", "bishan",
		"clementi", "hougang", "serangoon", "bukit", "batok", "timah", "pasir", "ris", "queenstown",
		"raffles", "marina", "bay", "central", "east", "west", "north", "south", "hong", "kong",
		"hk", "us", "usa", "uk", "gb", "au", "jp", "id", "th", "ph", "vn", "cn", "in",
	}

	currencyStopwords = []string{
		"sgd", "usd", "myr", "eur", "gbp", "aud", "jpy", "cny", "rmb", "hkd", "idr", "thb", "php",
		"vnd", "inr", "krw", "twd", "nzd", "cad", "chf",
	}

	calendarStopwords = []string{
		"jan", "january", "feb", "february", "mar", "march", "apr", "april", "may", "jun", "june",
		"jul", "july", "aug", "august", "sep", "sept", "september", "oct", "october", "nov",
		"november", "dec", "december",
		"mon", "monday", "tue", "tues", "tuesday", "wed", "wednesday", "thu", "thur", "thurs",
		"thursday", "fri", "friday", "sat", "saturday", "sun", "sunday",
	}

	transactionStopwords = []string{
		"pos", "nets", "debit", "credit", "card", "cards", "purchase", "payment", "payments", "pymt",
		"transfer", "trf", "xfer", "fast", "giro", "ibg", "paynow", "ref", "reference", "txn",
		"transaction", "trans", "visa", "mastercard", "master", "mst", "amex", "via", "to", "from",
		"otr", "inward", "outward", "incoming", "outgoing", "the", "and", "of", "for", "at", "on",
		"pte", "ltd", "plc", "inc", "co", "sdn", "bhd", "llc", "corp", "no", "nr", "ep", "eps",
		"ibanking", "mbanking", "online", "contactless", "recurring", "standing", "instruction",
		"si", "bill", "ccy", "exchange", "rate", "fee", "charges", "value", "date",
	}
)

func builtinStopwords() []string {
	out := make([]string, 0, len(locationStopwords)+len(currencyStopwords)+len(calendarStopwords)+len(transactionStopwords))
	out = append(out, locationStopwords...)
	out = append(out, currencyStopwords...)
	out = append(out, calendarStopwords...)
	out = append(out, transactionStopwords...)
	return out
}
