package viewmodels

// LoginViewData backs the landing page and both credential forms. Mode is
// "platform" or "tenant" and selects which form is highlighted.
type LoginViewData struct {
	CSRFToken    string
	Mode         string
	Identity     string
	Next         string
	ErrorMessage string
	Toast        *ToastViewData
}
