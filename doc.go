/*
Package mls is a localization-aware string template engine.

A template is ordinary text with tags between %{ and }%. Tags substitute
variables and run locale-sensitive functions that handle grammatical gender,
grammatical case and plural forms, and format numbers the way the locale
expects.

# Syntax

	%{name}%                  substitute variable name
	%{#comment#}%             removed entirely
	%{+SG=f}%                 declare the gender of this string
	%{who!G:he,she,it}%       pick a form by the gender of the template bound to who
	%{what!C=acc}%            render the template bound to what in the accusative case
	%{+C nom={kot} acc={kota}}%  pick a form by the case requested by the caller
	%{n!P:file,files}%        pick a plural form for the integer bound to n
	%{n!I=grouped}%           format an integer with the locale's grouping
	%{x!R:grouped,2}%         format a real with two fraction digits

Arguments come in three shapes: "=value" (single), ":a,b,c" (list, one item
per locale label, in the locale's order) and " key={value} ..." (map, keyed
by label).

# Usage example

Templates are usually stored as translations in a message catalog, one PO
file per locale:

	po/pl_PL.po
	po/en_US.po

On startup, compile them all:

	registry, err := mls.NewBundle().
		WatchFiles(mode == "dev").  // recompile on change (in dev)
		AddCatalogDir("po").
		Compile()

To render a message:

	var cat = registry.Template("pl_PL", "cat")
	out, err := registry.Template("pl_PL", "%{who}% saw %{what!C=acc}%").
		Apply("who", "Ala").
		Apply("what", cat).
		Render()

For one-off strings, Parse compiles a single template for a locale, and a
Translator looks strings up in a catalog.Catalog as they are needed.
*/
package mls
