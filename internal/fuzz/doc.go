// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser). They smoke test robustness on arbitrary
// inputs: no panics, no hangs, spans that stay inside the file.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер/парсер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
