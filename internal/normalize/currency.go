package normalize

// acceptedCurrencies are the codes both boards use for the Russian rouble.
var acceptedCurrencies = map[string]bool{
	"RUR": true,
	"RUB": true,
}

// AcceptCurrency reports whether a listing priced in currency with the given
// compensation may become a canonical vacancy.
func AcceptCurrency(currency string, compensation int) bool {
	return acceptedCurrencies[currency] && compensation != 0
}
