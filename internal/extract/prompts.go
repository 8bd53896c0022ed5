package extract

// CompanyDocPrompt asks for the two company document fields as numbered lines
const CompanyDocPrompt = `Analise o documento anexo e responda APENAS com duas linhas numeradas:
1. O tipo do documento (por exemplo: PGR, PCMSO, PPR, PCA ou outro).
2. A data de emissão no formato DD/MM/AAAA.
Se uma informação não constar no documento, responda N/A na linha correspondente.`

// ASOPrompt asks for the medical fitness certificate fields as JSON
const ASOPrompt = `Analise o Atestado de Saúde Ocupacional (ASO) anexo e responda APENAS com um objeto JSON com as chaves:
"data_aso": data do exame no formato DD/MM/AAAA,
"vencimento": data de vencimento no formato DD/MM/AAAA, ou "N/A" se não constar,
"riscos": riscos ocupacionais listados,
"cargo": cargo ou função do trabalhador,
"tipo_aso": tipo do exame (Admissional, Periódico, Demissional, Mudança de Risco, Retorno ao Trabalho ou Monitoração Pontual).
Não inclua nenhum texto fora do objeto JSON.`

// TrainingPrompt asks for the training certificate fields as JSON
const TrainingPrompt = `Analise o certificado de treinamento anexo e responda APENAS com um objeto JSON com as chaves:
"data": data de conclusão no formato DD/MM/AAAA,
"norma": norma regulamentadora do treinamento (por exemplo: NR-35, NR-33, Brigada de Incêndio),
"modulo": módulo ou nível do treinamento, ou "N/A" se não houver,
"tipo_treinamento": "formação" ou "reciclagem",
"carga_horaria": carga horária total em horas, como número.
Não inclua nenhum texto fora do objeto JSON.`

// PromptFor returns the prompt of an extraction kind
func PromptFor(kind string) (string, bool) {
	switch kind {
	case KindCompanyDoc:
		return CompanyDocPrompt, true
	case KindASO:
		return ASOPrompt, true
	case KindTraining:
		return TrainingPrompt, true
	}
	return "", false
}
