package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionCatalog = "catalog" // catalog:<page>
	actionSurah   = "surah"   // surah:<number>:<catalogPage>
	actionVerses  = "verses"  // verses:<number>:<page>
	actionBack    = "back"
)

var errInvalidCallback = errors.New("invalid callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// intParam parses the i-th parameter as a non-negative integer.
func (cd callbackData) intParam(i int) (int, error) {
	if i >= len(cd.Params) {
		return 0, errInvalidCallback
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil || n < 0 {
		return 0, errInvalidCallback
	}
	return n, nil
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildCatalogCallback builds callback data for opening a catalog page.
func buildCatalogCallback(page int) string {
	return callbackData{
		Action: actionCatalog,
		Params: []string{strconv.Itoa(page)},
	}.encode()
}

// buildSurahCallback builds callback data for selecting a chapter from a catalog page.
func buildSurahCallback(number, catalogPage int) string {
	return callbackData{
		Action: actionSurah,
		Params: []string{strconv.Itoa(number), strconv.Itoa(catalogPage)},
	}.encode()
}

// buildVersesCallback builds callback data for paging through a chapter's verses.
func buildVersesCallback(number, page int) string {
	return callbackData{
		Action: actionVerses,
		Params: []string{strconv.Itoa(number), strconv.Itoa(page)},
	}.encode()
}

func buildBackCallback() string {
	return actionBack
}
