package server

import (
	"errors"
	"net/http"

	"impractical.co/lantern"
	"impractical.co/lantern/internal/content"
	"impractical.co/lantern/internal/forms"
	"impractical.co/lantern/internal/pages"
	"impractical.co/lantern/internal/session"
)

const logoutMessage = "You have been logged out."

func (s *Server) contactPage(w http.ResponseWriter, r *http.Request) {
	layout := s.layout(w, r)
	info, err := content.Get[content.ContactInfo](r.Context(), s.client, content.EndpointContactInfo)
	if err != nil {
		logFetchError(r, content.EndpointContactInfo, err)
		page := pages.Contact(layout, nil, forms.ContactForm{})
		page.InfoError = content.Message(err, pages.FailureMessage)
		render(s, w, r, http.StatusBadGateway, page)
		return
	}
	render(s, w, r, http.StatusOK, pages.Contact(layout, &info, forms.ContactForm{}))
}

// submitContact sends the contact form. On success it redirects back to an
// empty form; otherwise the form is shown again with what was typed.
func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request.", http.StatusBadRequest)
		return
	}
	form := forms.ParseContactForm(r.PostForm)
	res := s.contact.Submit(r.Context(), form)
	if res.OK() {
		session.SetFlash(w, session.Flash{Kind: string(pages.ToastSuccess), Message: res.Message})
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
		return
	}

	status := http.StatusBadGateway
	if res.Field != "" {
		status = http.StatusUnprocessableEntity
	}
	layout := s.layout(w, r).WithToast(pages.Toast{Kind: pages.ToastError, Message: res.Message})
	page := pages.Contact(layout, nil, form)
	page.Invalid = res.Field
	render(s, w, r, status, page)
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.currentSession(r); ok {
		http.Redirect(w, r, forms.DashboardPath(forms.AccountType(sess.UserType)), http.StatusSeeOther)
		return
	}
	form := forms.LoginForm{AccountType: forms.AccountDonor}
	if r.URL.Query().Get("type") == string(forms.AccountAdmin) {
		form.AccountType = forms.AccountAdmin
	}
	render(s, w, r, http.StatusOK, pages.Login(s.layout(w, r), form))
}

// login checks the visitor's credentials and, when they're accepted,
// replaces any session the visitor had with a new one.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request.", http.StatusBadRequest)
		return
	}
	form := forms.ParseLoginForm(r.PostForm)
	res, err := s.auth.Login(ctx, form)
	if err != nil {
		lantern.Logger(ctx).InfoContext(ctx, "login failed", "account_type", form.AccountType, "error", err)
		layout := s.layout(w, r).WithToast(pages.Toast{Kind: pages.ToastError, Message: forms.LoginMessage(err)})
		render(s, w, r, loginFailureStatus(err), pages.Login(layout, form))
		return
	}

	sess, err := s.sessions.Create(res, string(form.AccountType))
	if err != nil {
		lantern.Logger(ctx).ErrorContext(ctx, "error creating session", "error", err)
		layout := s.layout(w, r).WithToast(pages.Toast{Kind: pages.ToastError, Message: forms.LoginMessage(nil)})
		render(s, w, r, http.StatusInternalServerError, pages.Login(layout, form))
		return
	}
	// the previous session only goes once its replacement exists
	if old := session.IDFromRequest(r); old != "" && old != sess.ID {
		if err := s.sessions.Delete(old); err != nil {
			lantern.Logger(ctx).WarnContext(ctx, "error deleting previous session", "error", err)
		}
	}
	session.SetCookie(w, sess, s.cookies)
	http.Redirect(w, r, forms.DashboardPath(form.AccountType), http.StatusSeeOther)
}

func loginFailureStatus(err error) int {
	var invalid *forms.ValidationError
	if errors.As(err, &invalid) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, content.ErrUnavailable) {
		return http.StatusBadGateway
	}
	var apiErr *content.Error
	if errors.As(err, &apiErr) && apiErr.Kind == content.KindDecode {
		return http.StatusBadGateway
	}
	return http.StatusUnauthorized
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.sessions.Delete(session.IDFromRequest(r)); err != nil {
		lantern.Logger(ctx).ErrorContext(ctx, "error deleting session", "error", err)
	}
	session.ClearCookie(w, s.cookies)
	session.SetFlash(w, session.Flash{Kind: string(pages.ToastSuccess), Message: logoutMessage})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// dashboard serves the dashboard for accounts of type t. Everyone else is
// sent to the login page.
func (s *Server) dashboard(t forms.AccountType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.currentSession(r)
		if !ok || forms.AccountType(sess.UserType) != t {
			http.Redirect(w, r, "/login?type="+string(t), http.StatusSeeOther)
			return
		}
		render(s, w, r, http.StatusOK, pages.Dashboard(s.layout(w, r), t, sess.User))
	}
}
