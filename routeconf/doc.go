// Package routeconf loads route tables from YAML and registers them on a
// mux.Router.
//
// A route table lists routes in matching order:
//
//	routes:
//	  - name: blog
//	    pattern: /blog/<slug>
//	    restrictions:
//	      slug: slug
//	  - name: default
//	    pattern: /<controller>/[action]/[id]
//	    defaults:
//	      action: index
//	    fallbacks:
//	      area: public
//	    restrictions:
//	      action: [index, show, edit]
//	      id: int
//
// A restriction is either a macro name (int, uuid, alpha, alphanum, slug,
// hex, date) or a list of accepted tokens. defaults apply to variables of
// the pattern; fallbacks are route-level values that need not name one.
//
// Unknown fields are rejected. Every configuration error of the table is
// reported at once by Register.
package routeconf
