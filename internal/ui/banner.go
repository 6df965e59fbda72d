package ui

import (
	"github.com/pterm/pterm"
)

func PrintBanner(version string) {
	logo := `
   _____ __    ____     __         __               
  / ___// /   / __ \   / /__  ____/ /___ ____  _____
  \__ \/ /   / /_/ /  / / _ \/ __  / __ '/ _ \/ ___/
 ___/ / /___/ _, _/  / /  __/ /_/ / /_/ /  __/ /    
/____/_____/_/ |_|  /_/\___/\__,_/\__, /\___/_/     
                                 /____/
`
	pterm.FgCyan.Println(logo)
	pterm.DefaultCenter.Println(pterm.FgGray.Sprint(version + " - Systematic Literature Review ledger"))
	pterm.Println()
}
