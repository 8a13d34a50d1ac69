package llm

import (
	"fmt"
)

// ViewKind is one of the Razor views generated for an entity.
type ViewKind string

const (
	ViewIndex   ViewKind = "Index"
	ViewCreate  ViewKind = "Create"
	ViewEdit    ViewKind = "Edit"
	ViewDetails ViewKind = "Details"
	ViewDelete  ViewKind = "Delete"
)

// ViewKinds is the fixed set, in generation order, of a full view set.
var ViewKinds = []ViewKind{ViewIndex, ViewCreate, ViewEdit, ViewDetails, ViewDelete}

func SystemPrompt() string {
	return `You are an expert ASP.NET Core MVC developer. Your task is to generate complete, compilable source files for an existing web application based on given requirements.

Follow the conventions of ASP.NET Core MVC and Entity Framework Core. Keep the generated code consistent with the names you are given.

Do NOT use markdown code blocks at the beginning or end of your responses. Respond with the file content only.`
}

func ProjectSummaryPrompt(report string) string {
	return fmt.Sprintf(`You are an expert software architect. I will provide you with a summary of the files in an application directory.
Based *only* on this file summary, please provide a one-paragraph, high-level overview of what this project likely is and what technologies it uses.

Here is the file summary:
%s

Your summary:`, report)
}

// ModelPrompt embeds properties verbatim; it is free text written by the
// user and is not validated here.
func ModelPrompt(name, properties, namespace string) string {
	return fmt.Sprintf(`Generate a C# model class for an ASP.NET Core MVC application.

Class name: %s
Namespace: %s.Models

Properties, as described by the developer:
%s

Requirements:
1. Use auto-implemented public properties with appropriate C# types.
2. Add an integer primary key property named Id unless the description already defines a key.
3. Add data annotations such as [Required], [StringLength] and [Display] where they make sense.
4. Include the using directives the class needs.

Provide only the C# source code for the file.`, name, namespace, properties)
}

func ControllerPrompt(name, contextName, namespace string) string {
	return fmt.Sprintf(`Generate an ASP.NET Core MVC controller for the model "%[1]s".

Controller class: %[1]ssController
Namespace: %[3]s.Controllers
Model: %[3]s.Models.%[1]s
Database context class: %[2]s (namespace %[3]s.Data), injected through the constructor

Requirements:
1. Implement the actions Index, Details, Create (GET and POST), Edit (GET and POST), Delete (GET) and DeleteConfirmed (POST).
2. Use async Entity Framework Core calls on the %[2]s.%[1]ss DbSet.
3. Validate [Bind] input and ModelState, and protect POST actions with [ValidateAntiForgeryToken].
4. Return NotFound() when an id is missing or does not match a record.

Provide only the C# source code for the file.`, name, contextName, namespace)
}

func ViewPrompt(kind ViewKind, name, properties, namespace string) string {
	return fmt.Sprintf(`Generate the Razor view "%[1]s.cshtml" for the ASP.NET Core MVC controller %[2]ssController.

Model class: %[4]s.Models.%[2]s
Model properties, as described by the developer:
%[3]s

View instructions:
%[5]s

Requirements:
1. Set ViewData["Title"] and use Bootstrap classes consistent with the default ASP.NET Core layout.
2. Use tag helpers (asp-for, asp-action, asp-route-id) rather than raw URLs.

Provide only the Razor markup for the file.`, kind, name, properties, namespace, kind.instructions())
}

func (k ViewKind) instructions() string {
	switch k {
	case ViewIndex:
		return `List every record in a table. The view's model is IEnumerable of the model class. Show one column per property and, for each row, links to Edit, Details and Delete. Add a "Create New" link above the table.`
	case ViewCreate:
		return `Render a form posting to the Create action with one input per editable property (no Id), validation messages for each field, a validation summary and a submit button. Include the _ValidationScriptsPartial section.`
	case ViewEdit:
		return `Render a form posting to the Edit action, prefilled from the model, with a hidden input for the Id, one input per editable property, validation messages and a save button. Include the _ValidationScriptsPartial section.`
	case ViewDetails:
		return `Show the record read-only using a description list (dl/dt/dd) with DisplayNameFor and DisplayFor for every property, followed by links to Edit and back to the list.`
	case ViewDelete:
		return `Ask "Are you sure you want to delete this?", show the record read-only like the Details view, and render a form posting to the Delete action (DeleteConfirmed) with a hidden Id and a delete button, plus a link back to the list.`
	default:
		return fmt.Sprintf("Generate the %s view for the model.", string(k))
	}
}
