package render

// buildTemplate is the Go html/template for the build view. It renders
// both the shareable summary and the editor; the editor adds the intent
// forms that post back to /apply.
const buildTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} — Expedition Planner</title>
  <style>` + pageCSS + `</style>
</head>
<body>
<main>
  {{if .Recovered}}
  <p class="notice">This link could not be read, so you are looking at a fresh build.</p>
  {{end}}

  <header>
    <h1>{{.Title}}</h1>
    {{if .ShareURL}}<p class="share"><a href="{{.ShareURL}}">{{.ShareURL}}</a></p>{{end}}
  </header>

  {{with .Build.Character}}
  <section>
    <h2>Character</h2>
    <p class="character">{{.Name}}</p>
  </section>
  {{end}}

  {{if .Build.Skills}}
  <section>
    <h2>Skills <span class="cost">{{.Build.SkillCost}} pts</span></h2>
    <ul class="skills">
      {{range .Build.Skills}}
      <li><strong>{{.Name}}</strong> <span class="cost">{{.Cost}}</span>
        {{if .Effect}}<span class="effect">{{.Effect}}</span>{{end}}</li>
      {{end}}
    </ul>
  </section>
  {{end}}

  {{if .Build.Modifiers}}
  <section>
    <h2>Luminas <span class="cost">{{.Build.ModifierCost}} pts</span></h2>
    <ul class="items">
      {{range .Build.Modifiers}}
      <li><strong>{{.Item.Name}}</strong>
        {{if .Level.Label}}<span class="level">Lv {{.Level.Label}}{{if not .Chosen}} (max){{end}}</span>{{end}}
        <span class="cost">{{.Item.Cost}}</span></li>
      {{end}}
    </ul>
  </section>
  {{end}}

  {{if .Build.Attributes}}
  <section>
    <h2>Pictos</h2>
    <ul class="items">
      {{range .Build.Attributes}}
      <li><strong>{{.Item.Name}}</strong>
        {{if .Level.Label}}<span class="level">Lv {{.Level.Label}}{{if not .Chosen}} (max){{end}}</span>{{end}}</li>
      {{end}}
    </ul>
    {{if .Build.AttributeTotals}}
    <table class="totals">
      {{range $attr, $v := .Build.AttributeTotals}}<tr><th>{{$attr}}</th><td>+{{$v}}</td></tr>{{end}}
    </table>
    {{end}}
  </section>
  {{end}}

  {{if .CommentHTML}}
  <section class="notes">
    <h2>Notes</h2>
    {{.CommentHTML}}
  </section>
  {{end}}

  {{if not .Summary}}
  <section class="editor">
    <h2>Edit</h2>
    <form method="post" action="/apply">
      <input type="hidden" name="token" value="{{.Token}}">
      <input type="hidden" name="op" value="set_title">
      <input type="text" name="text" value="{{.Build.Title}}" placeholder="Build title">
      <button type="submit">Set title</button>
    </form>
    <form method="post" action="/apply">
      <input type="hidden" name="token" value="{{.Token}}">
      <input type="hidden" name="op" value="set_comment">
      <textarea name="text" rows="4" placeholder="Notes (markdown)">{{.Build.Comment}}</textarea>
      <button type="submit">Save notes</button>
    </form>
    <form method="post" action="/apply">
      <input type="hidden" name="token" value="{{.Token}}">
      <input type="hidden" name="op" value="reset">
      <button type="submit" class="danger">Reset build</button>
    </form>
  </section>
  {{end}}
</main>
</body>
</html>
`

// pageCSS is the inline stylesheet, kept small so exported pages are
// self-contained.
const pageCSS = `
body { font-family: system-ui, sans-serif; margin: 0; background: #14161a; color: #e8e6e3; }
main { max-width: 48rem; margin: 0 auto; padding: 2rem 1rem; }
h1 { font-size: 1.6rem; margin-bottom: .25rem; }
h2 { font-size: 1.1rem; border-bottom: 1px solid #2c2f36; padding-bottom: .3rem; }
a { color: #8ab4f8; }
ul { list-style: none; padding: 0; }
li { padding: .3rem 0; }
.cost { color: #e0b05c; font-size: .85em; margin-left: .4rem; }
.level { color: #9aa0a6; font-size: .85em; margin-left: .4rem; }
.effect { display: block; color: #9aa0a6; font-size: .85em; }
.share a { font-size: .8em; color: #9aa0a6; word-break: break-all; }
.notice { background: #4a3b1e; padding: .6rem .8rem; border-radius: 4px; }
.totals th { text-align: left; padding-right: 1rem; color: #9aa0a6; font-weight: normal; }
mark.entity { background: #2c4a6e; color: #cfe3ff; padding: 0 .15em; border-radius: 2px; }
.notes pre { background: #1e2127; padding: .8rem; overflow-x: auto; border-radius: 4px; }
.editor form { margin: .6rem 0; display: flex; gap: .5rem; align-items: flex-start; }
.editor input[type=text], .editor textarea { flex: 1; background: #1e2127; color: inherit; border: 1px solid #2c2f36; border-radius: 4px; padding: .4rem; }
.editor button { background: #2c4a6e; color: #cfe3ff; border: none; border-radius: 4px; padding: .4rem .8rem; cursor: pointer; }
.editor button.danger { background: #6e2c2c; color: #ffd6d6; }
`
