package completion

import _ "embed"

// bashDriverTemplate is the bash program run by BashBackend. Its verbs are,
// in order: framework script, COMP_WORDS, COMP_CWORD and COMP_LINE, all
// already quoted.
//
//go:embed templates/bash_driver.tmpl
var bashDriverTemplate string
