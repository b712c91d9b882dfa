package shell

import "fmt"

// Hook returns the integration snippet that defines komodo_enable and
// komodo_disable in the running shell, printed by `komodo hook <shell>`.
// The bash family gets shell functions; csh has no functions, so it gets
// aliases with the classic `\!*` argument passing.
func Hook(shell ShellType, binary string) (string, error) {
	if err := ValidateShell(shell); err != nil {
		return "", err
	}

	if shell.Family() == FamilyCsh {
		return fmt.Sprintf("alias komodo_enable 'eval \"`%[1]s activate %[2]s \\!*`\"';\n"+
			"alias komodo_disable 'eval \"`%[1]s disable %[2]s`\"';\n", binary, shell), nil
	}

	return fmt.Sprintf(`komodo_enable() {
  eval "$(%[1]s activate %[2]s "$@")"
}
komodo_disable() {
  eval "$(%[1]s disable %[2]s)"
}
`, QuoteBash(binary), shell), nil
}

// HookLine returns the single line `komodo init` installs in the shell's
// rc file to load the hook at startup.
func HookLine(shell ShellType, binary string) (string, error) {
	if err := ValidateShell(shell); err != nil {
		return "", err
	}

	if shell.Family() == FamilyCsh {
		return fmt.Sprintf("eval \"`%s hook %s`\"", binary, shell), nil
	}
	return fmt.Sprintf(`eval "$(%s hook %s)"`, binary, shell), nil
}
