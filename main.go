package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hydrogen-lang/hydrogen-compiler/codegen"
	"github.com/hydrogen-lang/hydrogen-compiler/config"
	"github.com/hydrogen-lang/hydrogen-compiler/explorer"
	"github.com/hydrogen-lang/hydrogen-compiler/lexer"
	"github.com/hydrogen-lang/hydrogen-compiler/parser"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		outputFile  = flag.String("o", "", "Assembly output file (default from config, out.s)")
		configFile  = flag.String("config", "", "Config file path (default: platform config dir)")
		assemble    = flag.Bool("assemble", false, "Assemble and link the output with the host toolchain")
		run         = flag.Bool("run", false, "Run the linked binary and report its exit status (implies -assemble)")
		explore     = flag.Bool("explore", false, "Open the interactive compile explorer TUI")
		dumpTokens  = flag.Bool("dump-tokens", false, "Print the token stream and exit")
		dumpAST     = flag.Bool("dump-ast", false, "Print the AST and exit")
		verboseMode = flag.Bool("verbose", false, "Verbose output")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("Hydrogen compiler %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp || flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	// Load configuration
	var cfg *config.Config
	var err error
	if *configFile != "" {
		cfg, err = config.LoadFrom(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *outputFile != "" {
		cfg.Output.File = *outputFile
	}

	srcFile := flag.Arg(0)

	// Explorer mode takes over the terminal
	if *explore {
		if err := explorer.New(srcFile, cfg).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Explorer error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	content, err := os.ReadFile(srcFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", srcFile, err)
		os.Exit(1)
	}

	if *verboseMode {
		fmt.Printf("Compiling %s (%d bytes)\n", srcFile, len(content))
	}

	tokens, err := lexer.Tokenize(string(content))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lex error: %v\n", err)
		os.Exit(1)
	}
	if *verboseMode {
		fmt.Printf("Lexed %d tokens\n", len(tokens))
	}
	if *dumpTokens {
		fmt.Print(explorer.FormatTokens(tokens))
		return
	}

	prog, err := parser.New(tokens).Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		os.Exit(1)
	}
	if err := prog.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		os.Exit(1)
	}
	if *verboseMode {
		fmt.Printf("Parsed %d functions\n", len(prog.Functions))
	}
	if *dumpAST {
		fmt.Print(explorer.FormatAST(prog, cfg.Explorer.ASTIndent))
		return
	}

	gen := codegen.New()
	gen.SetComments(cfg.Output.Comments)
	asm, err := gen.Generate(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Codegen error: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(cfg.Output.File, []byte(asm), 0644); err != nil { // #nosec G306 -- assembly source output
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", cfg.Output.File, err)
		os.Exit(1)
	}
	if *verboseMode {
		fmt.Printf("Wrote %s\n", cfg.Output.File)
	}

	if *assemble || *run {
		if err := assembleAndLink(cfg, *verboseMode); err != nil {
			fmt.Fprintf(os.Stderr, "Toolchain error: %v\n", err)
			os.Exit(1)
		}
	}
	if *run {
		status, err := runBinary(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running %s: %v\n", cfg.Toolchain.Binary, err)
			os.Exit(1)
		}
		fmt.Printf("Result %d\n", status)
	}
}

// assembleAndLink invokes the host assembler and linker on the generated
// assembly
func assembleAndLink(cfg *config.Config, verbose bool) error {
	objFile := cfg.Toolchain.Binary + ".o"

	asArgs := append([]string{}, cfg.Toolchain.AssemblerArgs...)
	asArgs = append(asArgs, cfg.Output.File, "-o", objFile)
	if verbose {
		fmt.Printf("%s %s\n", cfg.Toolchain.Assembler, strings.Join(asArgs, " "))
	}
	cmd := exec.Command(cfg.Toolchain.Assembler, asArgs...) // #nosec G204 -- toolchain from user config
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("assembler failed: %w", err)
	}

	ldArgs := []string{"-o", cfg.Toolchain.Binary, objFile}
	ldArgs = append(ldArgs, cfg.Toolchain.LinkerArgs...)
	if cfg.Toolchain.SDKCommand != "" {
		sdkPath, err := exec.Command("sh", "-c", cfg.Toolchain.SDKCommand).Output() // #nosec G204 -- toolchain from user config
		if err != nil {
			return fmt.Errorf("SDK path discovery failed: %w", err)
		}
		ldArgs = append(ldArgs, "-syslibroot", strings.TrimSpace(string(sdkPath)))
	}
	if verbose {
		fmt.Printf("%s %s\n", cfg.Toolchain.Linker, strings.Join(ldArgs, " "))
	}
	cmd = exec.Command(cfg.Toolchain.Linker, ldArgs...) // #nosec G204 -- toolchain from user config
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("linker failed: %w", err)
	}

	return nil
}

// runBinary executes the linked program and returns its exit status
func runBinary(cfg *config.Config) (int, error) {
	cmd := exec.Command("./" + cfg.Toolchain.Binary) // #nosec G204 -- binary name from user config
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}

func printHelp() {
	fmt.Println("Hydrogen compiler - lowers Hydrogen source to AArch64 (Darwin) assembly")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  hydrogen [options] <source-file>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -o FILE        Assembly output file (default out.s)")
	fmt.Println("  -config FILE   Config file path")
	fmt.Println("  -assemble      Assemble and link with the host toolchain")
	fmt.Println("  -run           Run the linked binary and report its exit status")
	fmt.Println("  -explore       Open the interactive compile explorer TUI")
	fmt.Println("  -dump-tokens   Print the token stream and exit")
	fmt.Println("  -dump-ast      Print the AST and exit")
	fmt.Println("  -verbose       Verbose output")
	fmt.Println("  -version       Show version information")
	fmt.Println("  -help          Show this help")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  hydrogen program.hy")
	fmt.Println("  hydrogen -run program.hy")
	fmt.Println("  hydrogen -explore program.hy")
}
