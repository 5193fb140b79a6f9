// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
)

// Server-rendered views. The public site itself is a static page; only the
// confirmation outcome and the admin area are rendered here.

var confirmOKTmpl = template.Must(template.New("confirm_ok").Parse(`<!DOCTYPE html>
<html lang="it">
<head><meta charset="utf-8"><title>Citazione confermata</title><link rel="stylesheet" href="/static/style.css"></head>
<body>
<h1>Grazie {{.Name}}!</h1>
<p>La tua citazione è stata confermata e pubblicata.</p>
<p><a href="/static/index.html">Torna al sito</a></p>
</body>
</html>
`))

var confirmErrTmpl = template.Must(template.New("confirm_err").Parse(`<!DOCTYPE html>
<html lang="it">
<head><meta charset="utf-8"><title>Errore di conferma</title><link rel="stylesheet" href="/static/style.css"></head>
<body>
<h1>Conferma non riuscita</h1>
<p>{{.Reason}}</p>
<p><a href="/static/index.html">Torna al sito</a></p>
</body>
</html>
`))

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="it">
<head><meta charset="utf-8"><title>Admin - Login</title><link rel="stylesheet" href="/static/style.css"></head>
<body>
<h1>Area amministrazione</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/admin">
  <label>Username <input type="text" name="username" required></label>
  <label>Password <input type="password" name="password" required></label>
  <button type="submit">Accedi</button>
</form>
</body>
</html>
`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="it">
<head><meta charset="utf-8"><title>Admin - Dashboard</title><link rel="stylesheet" href="/static/style.css"></head>
<body>
<h1>Dashboard</h1>
<p><a href="/admin/logout">Esci</a></p>

<section>
  <h2>Manutenzione</h2>
  {{if .Maintenance}}<p class="error">Sito in manutenzione: {{.MaintMessage}}</p>{{end}}
  <form method="post" action="/admin/toggle_maintenance">
    {{if .Maintenance}}
      <input type="hidden" name="action" value="disable">
      <button type="submit">Disattiva manutenzione</button>
    {{else}}
      <input type="hidden" name="action" value="enable">
      <label>Messaggio <input type="text" name="message"></label>
      <button type="submit">Attiva manutenzione</button>
    {{end}}
  </form>
</section>

<section>
  <h2>In attesa di conferma ({{len .Pending}})</h2>
  <table>
    <tr><th>ID</th><th>Nome</th><th>Citazione</th><th>Email</th><th></th></tr>
    {{range .Pending}}
    <tr>
      <td>{{.ID}}</td><td>{{.FullName}}</td><td>{{.Text}}</td><td>{{.Email}}</td>
      <td>
        <form method="post" action="/admin/approve/{{.ID}}"><button type="submit">Approva</button></form>
        <form method="post" action="/admin/reject/{{.ID}}"><button type="submit">Rifiuta</button></form>
      </td>
    </tr>
    {{end}}
  </table>
</section>

<section>
  <h2>Citazioni pubblicate ({{.Listing.TotalCount}})</h2>
  <form method="get" action="/admin/dashboard">
    <input type="text" name="search" value="{{.Search}}" placeholder="Cerca testo o autore">
    <select name="filter_status">
      <option value="all" {{if eq .FilterStatus "all"}}selected{{end}}>Tutte</option>
      <option value="validated" {{if eq .FilterStatus "validated"}}selected{{end}}>Validate</option>
      <option value="not_validated" {{if eq .FilterStatus "not_validated"}}selected{{end}}>Da validare</option>
    </select>
    <button type="submit">Filtra</button>
  </form>
  <table>
    <tr><th>ID</th><th>Citazione</th><th>Autore</th><th>Validata</th><th>Inviata</th><th></th></tr>
    {{range .Listing.Quotes}}
    <tr>
      <td>{{.ID}}</td><td>{{.Text}}</td><td>{{.Author}}</td>
      <td>{{if .Validated}}sì{{else}}no{{end}}</td>
      <td>{{.SubmittedAgo}}</td>
      <td>
        <form method="post" action="/admin/quotes/edit/{{.ID}}">
          <input type="text" name="text" value="{{.Text}}">
          <input type="text" name="author" value="{{.Author}}">
          <label><input type="checkbox" name="validated" value="1" {{if .Validated}}checked{{end}}>validata</label>
          <button type="submit">Salva</button>
        </form>
        <form method="post" action="/admin/quotes/delete/{{.ID}}"><button type="submit">Elimina</button></form>
      </td>
    </tr>
    {{end}}
  </table>
  <p>Pagina {{.Listing.Page}} di {{.Listing.TotalPages}}</p>
  <form method="post" action="/admin/quotes/add">
    <h3>Aggiungi citazione</h3>
    <input type="text" name="text" placeholder="Citazione" required>
    <input type="text" name="author" placeholder="Autore" required>
    <label><input type="checkbox" name="validated" value="1">validata</label>
    <button type="submit">Aggiungi</button>
  </form>
</section>
</body>
</html>
`))

// render writes an HTML view with the given status.
func render(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("failed to render template", "template", tmpl.Name(), "error", err)
	}
}
