package render

// 三个模板变体。只允许在排列与装饰上不同：
// 显隐判断全部来自 docView，日期格式全部来自 dateRange/formatDate，
// 任何一个变体与其余变体渲染出不同的数据集合都算缺陷。

const modernTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { margin: 0; padding: 0; background: #f0f0f0; font-family: 'Inter', -apple-system, sans-serif; }
  #resume-root { width: 210mm; min-height: 297mm; background: #ffffff; color: #111827; margin: 0 auto; }
  .header { background: linear-gradient(135deg, #2563eb, #1d4ed8, #3730a3); color: #ffffff; padding: 32px; }
  .header h1 { margin: 0 0 12px 0; font-size: 34px; font-weight: 700; }
  .contact { font-size: 13px; opacity: 0.95; }
  .contact span { margin-right: 16px; }
  .content { padding: 32px; }
  .section { margin-bottom: 28px; }
  .section h2 { font-size: 18px; color: #1f2937; text-transform: uppercase; letter-spacing: 0.05em; border-left: 4px solid #2563eb; padding-left: 10px; margin: 0 0 14px 0; }
  .entry { margin-bottom: 16px; padding-left: 16px; border-left: 2px solid #e5e7eb; }
  .entry h3 { margin: 0; font-size: 15px; }
  .entry .meta { color: #4b5563; font-size: 13px; margin: 2px 0; }
  .entry .dates { color: #2563eb; font-size: 12px; }
  .entry p { margin: 6px 0 0 0; font-size: 13px; line-height: 1.6; color: #374151; white-space: pre-wrap; }
  .skills { display: flex; flex-wrap: wrap; gap: 8px; }
  .skill { background: #eff6ff; color: #1d4ed8; border: 1px solid #bfdbfe; border-radius: 8px; padding: 6px 12px; font-size: 13px; }
</style>
</head>
<body>
<div id="resume-root">
  <div class="header">
    <h1>{{.Name}}</h1>
    <div class="contact">
      {{if .PersonalInfo.Email}}<span>{{.PersonalInfo.Email}}</span>{{end}}
      {{if .PersonalInfo.Phone}}<span>{{.PersonalInfo.Phone}}</span>{{end}}
      {{if .PersonalInfo.Location}}<span>{{.PersonalInfo.Location}}</span>{{end}}
      {{if .PersonalInfo.LinkedIn}}<span>{{.PersonalInfo.LinkedIn}}</span>{{end}}
      {{if .PersonalInfo.Website}}<span>{{.PersonalInfo.Website}}</span>{{end}}
    </div>
  </div>
  <div class="content">
    {{if .ShowSummary}}
    <div class="section">
      <h2>Summary</h2>
      <p>{{.PersonalInfo.Summary}}</p>
    </div>
    {{end}}
    {{if .ShowExperience}}
    <div class="section">
      <h2>Experience</h2>
      {{range .Experience}}{{if .Company}}
      <div class="entry">
        <h3>{{.Position}}</h3>
        <div class="meta">{{.Company}}{{if .Location}} &bull; {{.Location}}{{end}}</div>
        <div class="dates">{{dateRange .StartDate .EndDate .Current}}</div>
        {{if .Description}}<p>{{.Description}}</p>{{end}}
      </div>
      {{end}}{{end}}
    </div>
    {{end}}
    {{if .ShowEducation}}
    <div class="section">
      <h2>Education</h2>
      {{range .Education}}{{if .Institution}}
      <div class="entry">
        <h3>{{.Degree}}{{if .Field}} in {{.Field}}{{end}}</h3>
        <div class="meta">{{.Institution}}</div>
        <div class="dates">{{dateRange .StartDate .EndDate false}}{{if .GPA}} &bull; GPA: {{.GPA}}{{end}}</div>
      </div>
      {{end}}{{end}}
    </div>
    {{end}}
    {{if .ShowSkills}}
    <div class="section">
      <h2>Skills</h2>
      <div class="skills">
        {{range .Skills}}<span class="skill">{{.Name}}</span>{{end}}
      </div>
    </div>
    {{end}}
    {{if .ShowProjects}}
    <div class="section">
      <h2>Projects</h2>
      {{range .Projects}}
      <div class="entry">
        <h3>{{.Name}}</h3>
        {{if .Description}}<p>{{.Description}}</p>{{end}}
        {{if .Technologies}}<div class="meta">Technologies: {{join .Technologies ", "}}</div>{{end}}
        {{if .Link}}<div class="dates">{{.Link}}</div>{{end}}
      </div>
      {{end}}
    </div>
    {{end}}
    {{if .ShowCertifications}}
    <div class="section">
      <h2>Certifications</h2>
      {{range .Certifications}}
      <div class="entry">
        <h3>{{.Name}}</h3>
        <div class="meta">{{.Issuer}}{{with formatDate .Date}} &bull; {{.}}{{end}}</div>
      </div>
      {{end}}
    </div>
    {{end}}
  </div>
</div>
</body>
</html>`

const minimalTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { margin: 0; padding: 0; background: #f0f0f0; font-family: Georgia, 'Times New Roman', serif; }
  #resume-root { width: 210mm; min-height: 297mm; background: #ffffff; color: #1f2937; margin: 0 auto; padding: 48px; box-sizing: border-box; }
  h1 { margin: 0; font-size: 30px; font-weight: 400; letter-spacing: 0.02em; text-align: center; }
  .contact { text-align: center; font-size: 12px; color: #6b7280; margin: 10px 0 32px 0; }
  .contact span + span::before { content: " \00b7  "; }
  h2 { font-size: 13px; text-transform: uppercase; letter-spacing: 0.2em; color: #6b7280; border-bottom: 1px solid #d1d5db; padding-bottom: 4px; margin: 28px 0 12px 0; }
  .entry { margin-bottom: 14px; }
  .row { display: flex; justify-content: space-between; align-items: baseline; }
  .row h3 { margin: 0; font-size: 14px; font-weight: 600; }
  .dates { font-size: 12px; color: #6b7280; }
  .meta { font-size: 13px; color: #4b5563; font-style: italic; }
  p { margin: 4px 0 0 0; font-size: 13px; line-height: 1.55; white-space: pre-wrap; }
  .skills { font-size: 13px; }
</style>
</head>
<body>
<div id="resume-root">
  <h1>{{.Name}}</h1>
  <div class="contact">
    {{if .PersonalInfo.Email}}<span>{{.PersonalInfo.Email}}</span>{{end}}
    {{if .PersonalInfo.Phone}}<span>{{.PersonalInfo.Phone}}</span>{{end}}
    {{if .PersonalInfo.Location}}<span>{{.PersonalInfo.Location}}</span>{{end}}
    {{if .PersonalInfo.LinkedIn}}<span>{{.PersonalInfo.LinkedIn}}</span>{{end}}
    {{if .PersonalInfo.Website}}<span>{{.PersonalInfo.Website}}</span>{{end}}
  </div>
  {{if .ShowSummary}}<p>{{.PersonalInfo.Summary}}</p>{{end}}
  {{if .ShowExperience}}
  <h2>Experience</h2>
  {{range .Experience}}{{if .Company}}
  <div class="entry">
    <div class="row"><h3>{{.Position}}</h3><span class="dates">{{dateRange .StartDate .EndDate .Current}}</span></div>
    <div class="meta">{{.Company}}{{if .Location}}, {{.Location}}{{end}}</div>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
  </div>
  {{end}}{{end}}
  {{end}}
  {{if .ShowEducation}}
  <h2>Education</h2>
  {{range .Education}}{{if .Institution}}
  <div class="entry">
    <div class="row"><h3>{{.Degree}}{{if .Field}} in {{.Field}}{{end}}</h3><span class="dates">{{dateRange .StartDate .EndDate false}}</span></div>
    <div class="meta">{{.Institution}}{{if .GPA}} &mdash; GPA: {{.GPA}}{{end}}</div>
  </div>
  {{end}}{{end}}
  {{end}}
  {{if .ShowSkills}}
  <h2>Skills</h2>
  <div class="skills">{{range $i, $s := .Skills}}{{if $i}}, {{end}}{{$s.Name}}{{end}}</div>
  {{end}}
  {{if .ShowProjects}}
  <h2>Projects</h2>
  {{range .Projects}}
  <div class="entry">
    <div class="row"><h3>{{.Name}}</h3>{{if .Link}}<span class="dates">{{.Link}}</span>{{end}}</div>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
    {{if .Technologies}}<div class="meta">{{join .Technologies ", "}}</div>{{end}}
  </div>
  {{end}}
  {{end}}
  {{if .ShowCertifications}}
  <h2>Certifications</h2>
  {{range .Certifications}}
  <div class="entry">
    <div class="row"><h3>{{.Name}}</h3><span class="dates">{{formatDate .Date}}</span></div>
    <div class="meta">{{.Issuer}}</div>
  </div>
  {{end}}
  {{end}}
</div>
</body>
</html>`

const professionalTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { margin: 0; padding: 0; background: #f0f0f0; font-family: 'Helvetica Neue', Arial, sans-serif; }
  #resume-root { width: 210mm; min-height: 297mm; background: #ffffff; color: #111827; margin: 0 auto; display: flex; }
  .side { width: 64mm; background: #1f2937; color: #e5e7eb; padding: 28px 20px; box-sizing: border-box; }
  .side h1 { font-size: 24px; margin: 0 0 18px 0; color: #ffffff; }
  .side h2 { font-size: 12px; text-transform: uppercase; letter-spacing: 0.15em; color: #9ca3af; border-bottom: 1px solid #374151; padding-bottom: 4px; margin: 22px 0 10px 0; }
  .side .contact div { font-size: 12px; margin-bottom: 6px; word-break: break-all; }
  .side .skill { font-size: 12px; margin-bottom: 5px; }
  .side .cat { color: #9ca3af; font-size: 10px; text-transform: uppercase; margin-left: 4px; }
  .main { flex: 1; padding: 28px 26px; box-sizing: border-box; }
  .main h2 { font-size: 15px; text-transform: uppercase; letter-spacing: 0.08em; color: #1f2937; border-bottom: 2px solid #1f2937; padding-bottom: 4px; margin: 0 0 12px 0; }
  .section { margin-bottom: 24px; }
  .entry { margin-bottom: 14px; }
  .entry h3 { margin: 0; font-size: 14px; }
  .meta { font-size: 12px; color: #4b5563; }
  .dates { font-size: 11px; color: #6b7280; }
  p { margin: 5px 0 0 0; font-size: 12px; line-height: 1.55; white-space: pre-wrap; }
</style>
</head>
<body>
<div id="resume-root">
  <div class="side">
    <h1>{{.Name}}</h1>
    <div class="contact">
      {{if .PersonalInfo.Email}}<div>{{.PersonalInfo.Email}}</div>{{end}}
      {{if .PersonalInfo.Phone}}<div>{{.PersonalInfo.Phone}}</div>{{end}}
      {{if .PersonalInfo.Location}}<div>{{.PersonalInfo.Location}}</div>{{end}}
      {{if .PersonalInfo.LinkedIn}}<div>{{.PersonalInfo.LinkedIn}}</div>{{end}}
      {{if .PersonalInfo.Website}}<div>{{.PersonalInfo.Website}}</div>{{end}}
    </div>
    {{if .ShowSkills}}
    <h2>Skills</h2>
    {{range .Skills}}<div class="skill">{{.Name}}<span class="cat">{{.Category}}</span></div>{{end}}
    {{end}}
    {{if .ShowCertifications}}
    <h2>Certifications</h2>
    {{range .Certifications}}
    <div class="skill">{{.Name}}<br><span class="cat">{{.Issuer}}{{with formatDate .Date}} &bull; {{.}}{{end}}</span></div>
    {{end}}
    {{end}}
  </div>
  <div class="main">
    {{if .ShowSummary}}
    <div class="section">
      <h2>Profile</h2>
      <p>{{.PersonalInfo.Summary}}</p>
    </div>
    {{end}}
    {{if .ShowExperience}}
    <div class="section">
      <h2>Experience</h2>
      {{range .Experience}}{{if .Company}}
      <div class="entry">
        <h3>{{.Position}}</h3>
        <div class="meta">{{.Company}}{{if .Location}} &bull; {{.Location}}{{end}}</div>
        <div class="dates">{{dateRange .StartDate .EndDate .Current}}</div>
        {{if .Description}}<p>{{.Description}}</p>{{end}}
      </div>
      {{end}}{{end}}
    </div>
    {{end}}
    {{if .ShowEducation}}
    <div class="section">
      <h2>Education</h2>
      {{range .Education}}{{if .Institution}}
      <div class="entry">
        <h3>{{.Degree}}{{if .Field}} in {{.Field}}{{end}}</h3>
        <div class="meta">{{.Institution}}{{if .GPA}} &bull; GPA: {{.GPA}}{{end}}</div>
        <div class="dates">{{dateRange .StartDate .EndDate false}}</div>
      </div>
      {{end}}{{end}}
    </div>
    {{end}}
    {{if .ShowProjects}}
    <div class="section">
      <h2>Projects</h2>
      {{range .Projects}}
      <div class="entry">
        <h3>{{.Name}}</h3>
        {{if .Description}}<p>{{.Description}}</p>{{end}}
        {{if .Technologies}}<div class="meta">{{join .Technologies ", "}}</div>{{end}}
        {{if .Link}}<div class="dates">{{.Link}}</div>{{end}}
      </div>
      {{end}}
    </div>
    {{end}}
  </div>
</div>
</body>
</html>`
