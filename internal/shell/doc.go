// Package shell tells the user how to put the install directory on PATH.
//
// The login shell is taken from $SHELL, falling back to the name of the
// parent process. Only bash, zsh and fish get tailored advice; any other
// shell gets the POSIX export line.
//
//	result := shell.DetectShell(ctx)
//	if !shell.OnPath(binDir, os.Getenv("PATH")) {
//	    fmt.Println(shell.PathHint(result.Shell, binDir))
//	}
package shell
