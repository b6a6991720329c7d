package commands

// HelpText lists the commands workers can send.
const HelpText = `Commands:
/pond <id> - select a pond
/stock <count> [note] - stock fish
/mortality <count> [reason] - log dead fish
/adjust <+/-count> [note] - correct the population
/feed <kg> [type] - log a feeding
/harvest <kg> <count> <price> [partial|total]
/expense <amount> <category> [note]
/sample <fish per kg> [note]
/purchase <type> <kg> <unit price>
/status /cycles /appetite /target`
