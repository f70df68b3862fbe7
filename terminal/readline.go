package terminal

// ReadLine reads a full line from the operator with echo and backspace
// handling. Empty lines are swallowed; the first non-empty line wins. Used
// by the bootstrap prompts, which run before the event decoder takes over.
func ReadLine(t Terminal) (string, error) {
	var line []byte
	for {
		b, err := t.ReadByte()
		if err != nil {
			return "", err
		}
		switch {
		case b == '\n' || b == '\r':
			if len(line) > 0 {
				return string(line), nil
			}
		case b == 8 || b == 127: // backspace / DEL
			if len(line) > 0 {
				line = line[:len(line)-1]
				t.Write("\b \b")
			}
		case b >= 32 && b <= 126:
			line = append(line, b)
			t.Write(string(b))
		}
	}
}
